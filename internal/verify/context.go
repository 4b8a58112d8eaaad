// Package verify is the verifier driver (component E): it orchestrates
// the certificate's sections, maintains the constraint table, enforces
// the trashing rule, resolves each derivation's reason, and emits the
// final verdict. A single Context is threaded through every section
// handler, generalizing the teacher's instruction to replace the
// original's file-scope globals with one context value per verification
// (spec §9, "Global mutable state").
package verify

import (
	"fmt"
	"io"

	"vipr/internal/constraint"
	"vipr/internal/diag"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

// RTPKind is the relation-to-prove's top-level shape.
type RTPKind int

const (
	RTPInfeasible RTPKind = iota
	RTPRange
)

// Header is the global header state of the data model: number of
// variables, variable names, integrality flags, objective, and the
// relation to prove.
type Header struct {
	NumVar            int
	VarNames          []string
	IsInt             []bool
	IsMin             bool
	Objective         svector.Vector
	ObjectiveIntegral bool

	RTP        RTPKind
	CheckLower bool
	CheckUpper bool
	LowerBound rational.Rat
	UpperBound rational.Rat
	LowerStr   string
	UpperStr   string
}

func (h *Header) isIntVar(idx int) bool {
	if idx < 0 || idx >= len(h.IsInt) {
		return false
	}
	return h.IsInt[idx]
}

// Context is the single mutable state threaded through every section
// handler: the constraint table (append-only, indices are canonical
// identity), the header, and the best objective value seen so far.
type Context struct {
	Header Header
	Table  []*constraint.Constraint
	NumCon int // original constraints occupy indices [0, NumCon)

	BestObjective rational.Rat
	HaveSolution  bool
	SyntheticGoal *constraint.Constraint // the "rtp" constraint of §4.5, nil if none needed

	Out     io.Writer
	Verbose bool
}

func newContext(out io.Writer, verbose bool) *Context {
	return &Context{Out: out, Verbose: verbose}
}

func (c *Context) logf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format+"\n", args...)
	}
}

func (c *Context) tracef(format string, args ...any) {
	if c.Verbose {
		c.logf(format, args...)
	}
}

// constraintAt returns the live constraint at idx, or a UseAfterTrash
// diagnostic if it has been trashed.
func (c *Context) constraintAt(idx int) (*constraint.Constraint, error) {
	if idx < 0 || idx >= len(c.Table) {
		return nil, diag.ParseError("", "constraint index %d out of range", idx)
	}
	con := c.Table[idx]
	if con.Trashed() {
		return nil, diag.UseAfterTrash(con.Label, idx)
	}
	return con, nil
}

// maybeTrash applies the trashing rule of §4.5: once a non-final
// derivation's maxRefIdx says it will never be referenced again, its
// coefficient/rhs storage is released immediately.
func (c *Context) maybeTrash(idx int, isLast bool) {
	if isLast {
		return
	}
	con := c.Table[idx]
	if con.MaxRefIdx >= 0 && con.MaxRefIdx < len(c.Table) {
		con.Trash()
	}
}
