package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

type Formatter func(string, ...interface{}) string

type Printer struct {
	module string
	config *PrinterConfig
}

type PrinterConfig struct {
	Writer           io.Writer
	ModuleFormatter  Formatter
	OutputFormatter  Formatter
	SuccessFormatter Formatter
	SuccessSymbol    string
	FailureFormatter Formatter
	FailureSymbol    string
}

func DefaultPrinterConfig() *PrinterConfig {
	return &PrinterConfig{
		Writer:           os.Stdout,
		ModuleFormatter:  color.New(color.FgBlue, color.Bold).SprintfFunc(),
		OutputFormatter:  color.New(color.FgHiYellow).SprintfFunc(),
		SuccessFormatter: color.New(color.FgGreen, color.Bold).SprintfFunc(),
		FailureFormatter: color.New(color.FgRed, color.Bold).SprintfFunc(),
		SuccessSymbol:    "[*]",
		FailureSymbol:    "[-]",
	}
}

func NewPrinter(module string) *Printer {
	return &Printer{
		module: module,
		config: DefaultPrinterConfig(),
	}
}

func (p *Printer) SetConfigs(cfg *PrinterConfig) *Printer {
	p.config = cfg
	return p
}

func (p *Printer) print(symbol string, msg string) {
	row := p.config.ModuleFormatter("%-9s", p.module)

	var txt string
	if symbol != "" {
		txt = msg
	} else {
		txt = p.config.OutputFormatter(msg)
	}
	fmt.Fprintf(p.config.Writer, "%s%s%s\n", row, symbol, txt)
}

func (p *Printer) Print(msg string) {
	p.print("", msg)
}

func (p *Printer) PrintSuccess(msg string) {
	p.print(
		p.config.SuccessFormatter("%s ", p.config.SuccessSymbol),
		msg,
	)
}

func (p *Printer) PrintFailure(msg string) {
	p.print(
		p.config.FailureFormatter("%s ", p.config.FailureSymbol),
		msg,
	)
}

func (p *Printer) PrintInfo(msg string) {
	p.print(
		color.BlueString("%s ", p.config.SuccessSymbol),
		msg,
	)
}
