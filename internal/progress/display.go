package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display shows one running step at a time.
type Display struct {
	capabilities TerminalCapabilities
	symbols      Symbols
	spinner      *spinner.Spinner
}

// NewDisplay creates a display for the given terminal capabilities.
func NewDisplay(caps TerminalCapabilities) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins displaying a step.
func (d *Display) Start(message string) {
	if d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		// Progress goes to stderr so document output on stdout stays clean
		d.spinner.Writer = os.Stderr
		d.spinner.Suffix = " " + message
		d.spinner.Start()
		return
	}
	fmt.Fprintln(os.Stderr, message)
}

// Succeed stops the spinner and prints a completion line.
func (d *Display) Succeed(message string) {
	d.stop()
	fmt.Fprintf(os.Stderr, "%s %s\n", d.mark(d.symbols.Checkmark, color.FgGreen), message)
}

// Fail stops the spinner and prints a failure line.
func (d *Display) Fail(message string) {
	d.stop()
	fmt.Fprintf(os.Stderr, "%s %s\n", d.mark(d.symbols.Failure, color.FgRed), message)
}

func (d *Display) stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

func (d *Display) mark(symbol string, attr color.Attribute) string {
	if d.capabilities.SupportsColor {
		return color.New(attr).Sprint(symbol)
	}
	return symbol
}
