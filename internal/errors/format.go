package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders a CLIError: a red category line, then the usage line and
// remediation steps when present. Colors follow fatih/color, which drops them
// when the output is not a terminal or NO_COLOR is set.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}

	red := color.New(color.FgRed, color.Bold).Sprint
	bold := color.New(color.Bold).Sprint
	dim := color.New(color.Faint).Sprint

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", red("✗ "+err.Category.String()+":"), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&b, "\n%s %s\n", bold("Usage:"), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", bold("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  %s %s\n", dim("•"), step)
		}
	}

	return b.String()
}

// FprintError writes err to w. A CLIError anywhere in the chain is rendered
// with its category and remediation; any other error is shown as a Runtime error.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}
	fmt.Fprint(w, FormatError(cliErr))
}
