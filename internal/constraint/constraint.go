// Package constraint implements the labelled (sense, rhs, sparse coef,
// assumption set) bundle that is the unit of truth the checker reasons
// about, along with its falsehood/tautology/domination predicates and
// Chvátal–Gomory rounding.
package constraint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"vipr/internal/rational"
	"vipr/internal/svector"
)

// ErrCoefficientNotInteger is returned by Round when an integer
// variable carries a non-integer coefficient.
var ErrCoefficientNotInteger = errors.New("coefficient of integer variable is not an integer")

// ErrTrashed is returned whenever trashed constraint data is read.
var ErrTrashed = errors.New("use of trashed constraint")

// Constraint is the (label, sense, rhs, coef, assumption_set, max_ref_idx,
// trashed) tuple of the data model.
type Constraint struct {
	Label        string
	Sense        Sense
	Rhs          rational.Rat
	Coef         svector.Vector
	Assumptions  AssumptionSet
	MaxRefIdx    int // -1 means "unused"
	IsAssumption bool

	trashed bool
}

// New builds a constraint and compacts its coefficient vector.
func New(label string, sense Sense, rhs rational.Rat, coef svector.Vector, isAssumption bool, assumptions AssumptionSet) *Constraint {
	if coef == nil {
		coef = svector.New()
	}
	coef.Compactify()
	if assumptions == nil {
		assumptions = AssumptionSet{}
	}
	return &Constraint{
		Label:        label,
		Sense:        sense,
		Rhs:          rhs,
		Coef:         coef,
		Assumptions:  assumptions,
		MaxRefIdx:    -1,
		IsAssumption: isAssumption,
	}
}

// Trashed reports whether the constraint's data has been released.
func (c *Constraint) Trashed() bool { return c.trashed }

// Trash releases the coefficient vector and assumption set; the
// constraint must never be read again.
func (c *Constraint) Trash() {
	c.trashed = true
	c.Coef = nil
	c.Assumptions = nil
	c.Rhs = rational.Zero()
}

// requireLive returns ErrTrashed for a trashed constraint, without
// panicking. The predicates below test the trashed flag directly and do
// not call it.
func (c *Constraint) requireLive() error {
	if c.trashed {
		return fmt.Errorf("%w: %s", ErrTrashed, c.Label)
	}
	return nil
}

// IsFalsehood reports whether the constraint is an empty-support
// impossibility such as "0 >= 1".
func (c *Constraint) IsFalsehood() bool {
	if c.trashed {
		return false
	}
	if len(c.Coef) != 0 {
		return false
	}
	return (c.Sense <= EQ && c.Rhs.Sign() < 0) || (c.Sense >= EQ && c.Rhs.Sign() > 0)
}

// IsTautology reports whether the constraint is an empty-support truth
// such as "0 <= 1".
func (c *Constraint) IsTautology() bool {
	if c.trashed {
		return false
	}
	if len(c.Coef) != 0 {
		return false
	}
	switch {
	case c.Sense == EQ:
		return c.Rhs.IsZero()
	case c.Sense == LE:
		return c.Rhs.Sign() >= 0
	default: // GE
		return c.Rhs.Sign() <= 0
	}
}

// Dominates reports "this implies other": a falsehood dominates anything;
// otherwise the coefficients must be equal and the rhs must be at least
// as tight as other's in the sense-appropriate direction.
func (c *Constraint) Dominates(other *Constraint) bool {
	if c.IsFalsehood() {
		return true
	}
	if !svector.Equal(c.Coef, other.Coef) {
		return false
	}
	switch {
	case other.Sense == GE && c.Sense >= EQ:
		return c.Rhs.Cmp(other.Rhs) >= 0
	case other.Sense == LE && c.Sense <= EQ:
		return c.Rhs.Cmp(other.Rhs) <= 0
	case other.Sense == EQ && c.Sense == EQ:
		return c.Rhs.Equal(other.Rhs)
	default:
		return false
	}
}

// Round applies Chvátal–Gomory rounding: every coefficient on an integer
// variable must already be integer, then the rhs is floored (sense <=),
// ceiled (sense >=), or left unchanged (sense =).
func (c *Constraint) Round(isInt func(varIdx int) bool) error {
	for idx, val := range c.Coef {
		if isInt(idx) && !val.IsInteger() {
			return fmt.Errorf("%w: variable index %d", ErrCoefficientNotInteger, idx)
		}
	}
	switch c.Sense {
	case LE:
		c.Rhs = c.Rhs.Floor()
	case GE:
		c.Rhs = c.Rhs.Ceil()
	}
	return nil
}

// String renders the constraint for diagnostics, listing its (compacted)
// coefficients in ascending variable index order.
func (c *Constraint) String() string {
	if c.trashed {
		return fmt.Sprintf("%s: <trashed>", c.Label)
	}
	idxs := make([]int, 0, len(c.Coef))
	for idx := range c.Coef {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	var b strings.Builder
	first := true
	for _, idx := range idxs {
		val := c.Coef[idx]
		if val.Sign() == 0 {
			continue
		}
		if !first {
			if val.Sign() > 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
			}
		} else if val.Sign() < 0 {
			b.WriteString("-")
		}
		abs := val
		if abs.Sign() < 0 {
			abs = abs.Neg()
		}
		fmt.Fprintf(&b, "%s x%d", abs.String(), idx)
		first = false
	}
	if first {
		b.WriteString("0")
	}
	fmt.Fprintf(&b, " %s %s", c.Sense.String(), c.Rhs.String())
	return b.String()
}
