package runner_test

import (
	"strings"
	"testing"

	"github.com/0x6d61/adlab/internal/runner"
)

func labOptions() *runner.EnvOptions {
	o := &runner.EnvOptions{}
	o.Args.DOMAIN = "contoso.local"
	o.Args.USER = "jdoe"
	o.Args.PASSWORD = "S3cret!"
	o.Args.DC = "dc01.contoso.local"
	o.Args.NS = "10.0.0.5"
	return o
}

func TestEnvExamples(t *testing.T) {
	examples := labOptions().Examples()
	if len(examples) != 3 {
		t.Fatalf("%d examples, expected: 3", len(examples))
	}

	exp := []string{
		"bloodhound-python -d contoso.local -u jdoe -p 'S3cret!' -dc dc01.contoso.local -ns 10.0.0.5 -c all --zip",
		"netexec ldap dc01.contoso.local -d contoso.local -u jdoe -p 'S3cret!' --kerberoasting kerberoast.txt",
		"impacket-GetUserSPNs 'contoso.local/jdoe:S3cret!' -dc-ip 10.0.0.5 -request",
	}
	for i, e := range examples {
		if e != exp[i] {
			t.Errorf("example %d:\n%s\nexpected:\n%s", i, e, exp[i])
		}
	}
}

func TestEnvExamplesPropagateValuesVerbatim(t *testing.T) {
	// malformed values are not validated, they flow through as-is
	o := &runner.EnvOptions{}
	o.Args.DOMAIN = "not a domain at all"
	o.Args.NS = "999.999.999.999"

	for _, e := range o.Examples() {
		if strings.Contains(e, "-d ") && !strings.Contains(e, "not a domain at all") {
			t.Errorf("domain not propagated: %s", e)
		}
	}
}

func TestEnvExports(t *testing.T) {
	exports := labOptions().Exports()
	exp := []string{
		"export ADLAB_DOMAIN='contoso.local'",
		"export ADLAB_USER='jdoe'",
		"export ADLAB_PASSWORD='S3cret!'",
		"export ADLAB_DC='dc01.contoso.local'",
		"export ADLAB_NS='10.0.0.5'",
	}
	if len(exports) != len(exp) {
		t.Fatalf("%d export lines, expected: %d", len(exports), len(exp))
	}
	for i, e := range exports {
		if e != exp[i] {
			t.Errorf("%s, expected: %s", e, exp[i])
		}
	}
}
