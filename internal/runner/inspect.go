package runner

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/0x6d61/adlab/internal/printer"
	"github.com/0x6d61/adlab/internal/utils"
	"github.com/0x6d61/adlab/pkg/javaserial"
	"github.com/0x6d61/adlab/pkg/ldapfetch"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

type InspectOptions struct {
	Base64 string `short:"b" long:"b64" description:"Base64 encoded serialized object"`
	File   string `short:"f" long:"file" description:"File holding the raw serialized object (- for stdin)"`
	URL    string `long:"url" description:"Fetch the payload from a JNDI style ldap:// URL"`
	Out    string `short:"o" long:"out" description:"Save the raw payload (or remote factory class) to file"`
}

func (o *InspectOptions) Execute(args []string) error {
	return o.Run()
}

func (o *InspectOptions) Run() error {
	prt := printer.NewPrinter("INSPECT")

	data, err := o.payload(prt)
	if err != nil {
		return err
	}
	if data == nil {
		// remote factory entry, nothing to deserialize
		return nil
	}

	if o.Out != "" {
		if err := os.WriteFile(o.Out, data, 0o644); err != nil {
			return err
		}
		prt.PrintSuccess(fmt.Sprintf("raw payload saved to %s", o.Out))
	}

	obj, err := javaserial.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}

	ref, ok := javaserial.AsReference(obj)
	if !ok {
		prt.PrintFailure(fmt.Sprintf("not a Reference (%s)", javaserial.TypeName(obj)))
		return nil
	}

	prt.PrintSuccess(fmt.Sprintf("javax.naming.Reference to class %s", ref.ClassName))
	if ref.FactoryClassName != "" {
		prt.Print(fmt.Sprintf("factory: %s", ref.FactoryClassName))
	}
	if ref.FactoryLocation != "" {
		prt.Print(fmt.Sprintf("factory location: %s", ref.FactoryLocation))
	}

	tbl := table.New("Type", "Content")
	tbl.WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc()).
		WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc())
	for _, addr := range ref.Addrs {
		tbl.AddRow(addr.Type, addr.Content)
	}
	fmt.Println()
	tbl.Print()
	fmt.Println()
	return nil
}

func (o *InspectOptions) payload(prt *printer.Printer) ([]byte, error) {
	sources := 0
	for _, s := range []string{o.Base64, o.File, o.URL} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.New("provide exactly one of --b64, --file, --url")
	}

	switch {
	case o.Base64 != "":
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(o.Base64))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 payload: %w", err)
		}
		return data, nil
	case o.File != "":
		return utils.ReadSource(o.File)
	}

	payload, err := ldapfetch.Fetch(o.URL)
	if err != nil {
		return nil, err
	}
	if len(payload.SerializedData) > 0 {
		prt.PrintInfo("entry carries a javaSerializedData attribute")
		return payload.SerializedData, nil
	}

	prt.PrintInfo(fmt.Sprintf("entry points to remote factory %s", payload.ClassURL()))
	if o.Out == "" {
		return nil, nil
	}
	class, err := payload.FetchClass()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(o.Out, class, 0o644); err != nil {
		return nil, err
	}
	prt.PrintSuccess(fmt.Sprintf("factory class saved to %s", o.Out))
	return nil, nil
}
