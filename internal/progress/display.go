package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display orchestrates the display of progress indicators
type Display struct {
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	errOut       io.Writer
	barWidth     int
	spinner      *spinner.Spinner
	downloading  bool
	lastPercent  int
}

// NewDisplay creates a display writing status lines and the download bar to
// out (stdout when nil) and the spinner to errOut (stderr when nil).
func NewDisplay(caps TerminalCapabilities, out, errOut io.Writer) *Display {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
		errOut:       errOut,
		barWidth:     barWidthFor(caps.Width),
	}
}

// Start shows msg with a spinner on a TTY, or prints it once otherwise.
func (d *Display) Start(msg string) {
	d.Stop()

	if !d.capabilities.IsTTY {
		fmt.Fprintln(d.out, msg)
		return
	}

	opts := []spinner.Option{spinner.WithWriter(d.errOut), spinner.WithSuffix(" " + msg)}
	if f, ok := d.errOut.(*os.File); ok {
		// the spinner only animates when this file is a terminal
		opts = append(opts, spinner.WithWriterFile(f))
	}
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
		opts...,
	)
	d.spinner.Start()
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// Succeed stops the spinner and prints msg with a checkmark.
func (d *Display) Succeed(msg string) {
	d.Stop()
	d.endDownloadLine()
	fmt.Fprintf(d.out, "%s %s\n", checkmark(d.symbols, d.capabilities.SupportsColor), msg)
}

// Fail stops the spinner and prints msg with a failure mark.
func (d *Display) Fail(msg string) {
	d.Stop()
	d.endDownloadLine()
	fmt.Fprintf(d.out, "%s %s\n", failureMark(d.symbols, d.capabilities.SupportsColor), msg)
}

// Download redraws the download bar. It matches the update.ProgressWriter
// callback signature. Non-TTY output only gets a line every 25 percent.
func (d *Display) Download(current, total int64) {
	d.Stop()

	if d.capabilities.IsTTY {
		d.downloading = true
		fmt.Fprintf(d.out, "\r%s", formatDownload(current, total, d.barWidth, d.symbols))
		return
	}

	if total <= 0 {
		return
	}
	percent := int(current * 100 / total)
	step := percent / 25 * 25
	if step > d.lastPercent {
		d.lastPercent = step
		fmt.Fprintln(d.out, formatDownload(current, total, d.barWidth, d.symbols))
	}
}

// endDownloadLine terminates an in-place download bar.
func (d *Display) endDownloadLine() {
	if d.downloading {
		fmt.Fprintln(d.out)
		d.downloading = false
	}
}
