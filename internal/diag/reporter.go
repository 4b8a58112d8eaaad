package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter prints fatal checker errors to an output stream, colorized the
// way the teacher's cmd/kanso-cli prints syntax errors.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report prints err and returns the process exit code the caller should
// use (always nonzero; the checker's taxonomy has no warning-only kind).
func (r *Reporter) Report(err error) int {
	red := color.New(color.FgRed, color.Bold)
	if ce, ok := err.(*Error); ok {
		red.Fprintf(r.out, "error[%s]: %s\n", ce.Code, ce.Message)
		if ce.Label != "" {
			fmt.Fprintf(r.out, "  --> derivation %q\n", ce.Label)
		}
		return -1
	}
	red.Fprintf(r.out, "error: %s\n", err)
	return -1
}

// Warn prints a non-fatal diagnostic (e.g. the unresolved RTP bound
// question from spec §9) without affecting the exit code.
func (r *Reporter) Warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(r.out, "warning: "+format+"\n", args...)
}
