package runner

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/0x6d61/adlab/internal/printer"
	"github.com/0x6d61/adlab/internal/utils"
	"github.com/0x6d61/adlab/pkg/wordgen"
	"github.com/schollz/progressbar/v3"
)

type WordgenOptions struct {
	Args struct {
		TEXT string `description:"Base string to mutate"`
	} `positional-args:"yes" required:"yes"`

	AppendDigits bool   `short:"a" long:"append-digits" description:"Append all numeric suffixes of length 1 to 4"`
	Limit        uint64 `short:"l" long:"limit" description:"Stop after this many variants (0 = no limit)"`
	Out          string `short:"o" long:"out" description:"Write variants to a file instead of stdout"`
	CountOnly    bool   `short:"c" long:"count-only" description:"Only print how many variants would be generated"`
}

func (o *WordgenOptions) Execute(args []string) error {
	return o.Run()
}

func (o *WordgenOptions) Run() error {
	total := wordgen.Count(o.Args.TEXT, o.AppendDigits)
	if o.Limit != 0 && o.Limit < total {
		total = o.Limit
	}

	if o.CountOnly {
		fmt.Println(total)
		return nil
	}

	sink, err := utils.CreateSink(o.Out)
	if err != nil {
		return err
	}
	defer sink.Close()
	w := bufio.NewWriter(sink)

	// progress only when stdout stays free for piping
	var bar *progressbar.ProgressBar
	if o.Out != "" && total <= math.MaxInt64 {
		bar = progressbar.NewOptions64(int64(total),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(65*time.Millisecond),
		)
	}

	var emitted uint64
	err = wordgen.Generate(o.Args.TEXT, o.AppendDigits, func(variant string) error {
		if _, err := w.WriteString(variant); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		emitted++
		if bar != nil {
			_ = bar.Add(1)
		}
		if o.Limit != 0 && emitted >= o.Limit {
			return wordgen.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, wordgen.ErrStop) {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if o.Out != "" {
		prt := printer.NewPrinter("WORDGEN")
		prt.PrintSuccess(fmt.Sprintf("wrote %d variants to %s", emitted, o.Out))
	}
	return nil
}
