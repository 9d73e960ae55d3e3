package runner

import (
	"fmt"

	"github.com/0x6d61/adlab/internal/printer"
)

// EnvOptions holds the five lab parameters every example invocation is
// built from. Values are not validated, whatever is passed ends up
// verbatim in the output.
type EnvOptions struct {
	Args struct {
		DOMAIN   string `description:"Lab domain (FQDN)"`
		USER     string `description:"Username"`
		PASSWORD string `description:"Password"`
		DC       string `description:"Domain controller FQDN"`
		NS       string `description:"Name server IP"`
	} `positional-args:"yes"`

	Export bool `short:"e" long:"export" description:"Print export lines for eval instead of tool examples"`
}

func (o *EnvOptions) Execute(args []string) error {
	return o.Run()
}

func (o *EnvOptions) Run() error {
	if o.Export {
		for _, line := range o.Exports() {
			fmt.Println(line)
		}
		return nil
	}

	prt := printer.NewPrinter("ENV")
	prt.PrintInfo("example invocations, copy and adapt")
	for _, example := range o.Examples() {
		fmt.Println(example)
	}
	return nil
}

// Examples renders one ready-to-paste command line per supported
// external tool.
func (o *EnvOptions) Examples() []string {
	a := o.Args
	return []string{
		fmt.Sprintf("bloodhound-python -d %s -u %s -p '%s' -dc %s -ns %s -c all --zip",
			a.DOMAIN, a.USER, a.PASSWORD, a.DC, a.NS),
		fmt.Sprintf("netexec ldap %s -d %s -u %s -p '%s' --kerberoasting kerberoast.txt",
			a.DC, a.DOMAIN, a.USER, a.PASSWORD),
		fmt.Sprintf("impacket-GetUserSPNs '%s/%s:%s' -dc-ip %s -request",
			a.DOMAIN, a.USER, a.PASSWORD, a.NS),
	}
}

// Exports renders the parameters as shell export lines, suitable for
// eval "$(adlab env ... -e)".
func (o *EnvOptions) Exports() []string {
	a := o.Args
	return []string{
		fmt.Sprintf("export ADLAB_DOMAIN='%s'", a.DOMAIN),
		fmt.Sprintf("export ADLAB_USER='%s'", a.USER),
		fmt.Sprintf("export ADLAB_PASSWORD='%s'", a.PASSWORD),
		fmt.Sprintf("export ADLAB_DC='%s'", a.DC),
		fmt.Sprintf("export ADLAB_NS='%s'", a.NS),
	}
}
