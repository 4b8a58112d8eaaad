// Package rational is the exact arithmetic facade used throughout the
// checker: every constraint, multiplier, and solution value flows through
// a Rat so that no derivation is ever validated with floating point.
package rational

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Rat is an arbitrary-precision signed rational. The zero value is the
// rational 0 (it is what Zero returns); build other values with NewInt
// or Parse.
type Rat struct {
	v big.Rat
}

// Zero returns the rational 0.
func Zero() Rat { return Rat{} }

// NewInt returns the rational n/1.
func NewInt(n int64) Rat {
	var r Rat
	r.v.SetInt64(n)
	return r
}

// Parse accepts an integer literal, a "p/q" fraction with q>0, or a
// decimal literal like "3.25" or "-0.5". It never panics; a malformed
// denominator (q<=0, non-numeric tokens, or "p/0") is reported as an
// error rather than causing a division by zero.
func Parse(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rat{}, fmt.Errorf("empty rational literal")
	}

	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		numStr, denStr := s[:idx], s[idx+1:]
		num, ok1 := new(big.Int).SetString(numStr, 10)
		den, ok2 := new(big.Int).SetString(denStr, 10)
		if !ok1 || !ok2 {
			return Rat{}, fmt.Errorf("malformed fraction %q", s)
		}
		if den.Sign() <= 0 {
			return Rat{}, fmt.Errorf("denominator must be positive in %q", s)
		}
		var r Rat
		r.v.SetFrac(num, den)
		return r, nil
	}

	if strings.ContainsAny(s, ".eE") {
		f, ok := new(big.Rat).SetString(s)
		if !ok {
			return Rat{}, fmt.Errorf("malformed decimal literal %q", s)
		}
		return Rat{v: *f}, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// fall back to big.Int for literals wider than int64
		bi, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Rat{}, fmt.Errorf("malformed integer literal %q", s)
		}
		var r Rat
		r.v.SetInt(bi)
		return r, nil
	}
	return NewInt(n), nil
}

func (r Rat) String() string {
	if r.v.IsInt() {
		return r.v.Num().String()
	}
	return r.v.RatString()
}

// Float64 is for diagnostic display only; never used in a correctness check.
func (r Rat) Float64() float64 {
	f, _ := r.v.Float64()
	return f
}

func (r Rat) Add(o Rat) Rat {
	var res Rat
	res.v.Add(&r.v, &o.v)
	return res
}

func (r Rat) Sub(o Rat) Rat {
	var res Rat
	res.v.Sub(&r.v, &o.v)
	return res
}

func (r Rat) Mul(o Rat) Rat {
	var res Rat
	res.v.Mul(&r.v, &o.v)
	return res
}

// Div returns r/o. The caller must ensure o is nonzero; this package
// never divides by a zero multiplier anywhere in the checker.
func (r Rat) Div(o Rat) Rat {
	var res Rat
	res.v.Quo(&r.v, &o.v)
	return res
}

func (r Rat) Neg() Rat {
	var res Rat
	res.v.Neg(&r.v)
	return res
}

func (r Rat) Cmp(o Rat) int { return r.v.Cmp(&o.v) }

func (r Rat) Equal(o Rat) bool { return r.Cmp(o) == 0 }

func (r Rat) IsZero() bool { return r.v.Sign() == 0 }

// Sign returns -1, 0, or 1.
func (r Rat) Sign() int { return r.v.Sign() }

// Floor returns the largest integer <= r, as a rational.
func (r Rat) Floor() Rat {
	q := new(big.Int)
	q.Div(r.v.Num(), r.v.Denom()) // big.Int.Div is Euclidean-floored for positive divisors
	var res Rat
	res.v.SetInt(q)
	return res
}

// Ceil returns the smallest integer >= r, as a rational.
func (r Rat) Ceil() Rat {
	floor := r.Floor()
	if floor.Equal(r) {
		return floor
	}
	return floor.Add(NewInt(1))
}

// IsInteger reports whether r has denominator 1.
func (r Rat) IsInteger() bool { return r.v.IsInt() }
