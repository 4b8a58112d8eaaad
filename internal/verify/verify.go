package verify

import (
	"io"

	"vipr/internal/certfile"
)

// Options controls how Verify reports progress.
type Options struct {
	Out     io.Writer // progress/diagnostic sink; nil discards output
	Verbose bool      // trace every derivation as it is checked
}

// Verify reads a complete VIPR certificate from src and checks it section
// by section: VER, VAR, INT, OBJ, CON, RTP, SOL, DER. It returns nil only
// if every derivation is valid, every assumption is discharged by the
// final derivation, and the relation to prove holds.
func Verify(src []byte, opts Options) error {
	r := certfile.NewReader(src)
	c := newContext(opts.Out, opts.Verbose)

	steps := []func(*certfile.Reader, *Context) error{
		processVER,
		processVAR,
		processINT,
		processOBJ,
		processCON,
		processRTP,
		processSOL,
		processDER,
	}
	for _, step := range steps {
		if err := step(r, c); err != nil {
			return err
		}
	}
	return nil
}
