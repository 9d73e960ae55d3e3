package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/0x6d61/adlab/internal/runner"
	"github.com/jessevdk/go-flags"
)

func main() {
	p := flags.NewNamedParser("adlab", flags.Default)

	commands := []struct {
		name  string
		short string
		long  string
		data  interface{}
	}{
		{
			"env", "Print example AD tool invocations",
			"Render ready-to-paste example invocations of third-party AD tools from the five lab parameters, or export lines for eval.",
			&runner.EnvOptions{},
		},
		{
			"inspect", "Inspect a serialized JNDI payload",
			"Decode a java serialization stream from base64, file or an ldap:// URL and print the naming Reference it carries.",
			&runner.InspectOptions{},
		},
		{
			"dupes", "Find recurring users in a credential dump",
			"Count username occurrences in a user:password dump file and report the ones above a threshold.",
			&runner.DupesOptions{},
		},
		{
			"wordgen", "Generate password variants of a string",
			"Expand a seed string into case, leetspeak and numeric-suffix variants.",
			&runner.WordgenOptions{},
		},
	}
	for _, c := range commands {
		if _, err := p.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			// go-flags already printed the usage problem
			os.Exit(1)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
