package runner

import (
	"fmt"

	"github.com/0x6d61/adlab/internal/printer"
	"github.com/0x6d61/adlab/internal/utils"
	"github.com/0x6d61/adlab/pkg/creds"
	"github.com/fatih/color"
	"github.com/rodaine/table"
)

type DupesOptions struct {
	Args struct {
		FILE string `description:"user:password dump file (- for stdin)"`
	} `positional-args:"yes" required:"yes"`

	Min int `short:"m" long:"min" default:"3" description:"Report users seen more than this many times"`
}

func (o *DupesOptions) Execute(args []string) error {
	return o.Run()
}

func (o *DupesOptions) Run() error {
	src, err := utils.OpenSource(o.Args.FILE)
	if err != nil {
		return err
	}
	defer src.Close()

	counts, order, err := creds.CountUsers(src)
	if err != nil {
		return err
	}

	prt := printer.NewPrinter("DUPES")
	frequent := creds.FrequentUsers(counts, order, o.Min)
	if len(frequent) == 0 {
		prt.PrintFailure(fmt.Sprintf("no users occur more than %d times", o.Min))
		return nil
	}

	prt.PrintSuccess(fmt.Sprintf("users occurring more than %d times", o.Min))
	tbl := table.New("User", "Count")
	tbl.WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc()).
		WithFirstColumnFormatter(color.New(color.FgYellow).SprintfFunc())
	for _, uc := range frequent {
		tbl.AddRow(uc.Username, uc.Count)
	}
	fmt.Println()
	tbl.Print()
	fmt.Println()
	return nil
}
