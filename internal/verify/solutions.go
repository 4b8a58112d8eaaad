package verify

import (
	"vipr/internal/certfile"
	"vipr/internal/constraint"
	"vipr/internal/diag"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

func satisfies(sense constraint.Sense, rhs, prod rational.Rat) bool {
	switch sense {
	case constraint.LE:
		return prod.Cmp(rhs) <= 0
	case constraint.GE:
		return prod.Cmp(rhs) >= 0
	default:
		return prod.Cmp(rhs) == 0
	}
}

func processSOL(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing SOL section...")
	if err := r.ExpectLiteral("SOL"); err != nil {
		return err
	}
	numSol, err := r.ExpectInt("number of solutions")
	if err != nil {
		return err
	}
	if numSol < 0 {
		return diag.ParseError("", "invalid number after SOL: %d", numSol)
	}

	for i := 0; i < numSol; i++ {
		label, err := r.ExpectIdent("solution label")
		if err != nil {
			return err
		}
		c.logf("checking solution %s", label)

		x, err := r.ExpectSparseVec()
		if err != nil {
			return diag.SolutionViolation(label, "failed to read solution: %v", err)
		}

		for idx, val := range x {
			if c.Header.isIntVar(idx) && !val.IsInteger() {
				return diag.SolutionViolation(label, "noninteger value for integer variable %d", idx)
			}
		}

		for j := 0; j < c.NumCon; j++ {
			con := c.Table[j]
			prod := svector.ScalarProduct(con.Coef, x)
			if !satisfies(con.Sense, con.Rhs, prod) {
				return diag.SolutionViolation(label, "constraint %d (%s) not satisfied", j, con.Label)
			}
		}

		value := svector.ScalarProduct(c.Header.Objective, x)
		c.logf("   objval = %s", value.String())

		if !c.HaveSolution {
			c.BestObjective = value
			c.HaveSolution = true
		} else if c.Header.IsMin && value.Cmp(c.BestObjective) < 0 {
			c.BestObjective = value
		} else if !c.Header.IsMin && value.Cmp(c.BestObjective) > 0 {
			c.BestObjective = value
		}
	}

	if numSol > 0 {
		c.logf("Best objval: %s", c.BestObjective.String())
		if c.Header.IsMin && c.Header.CheckUpper && c.BestObjective.Cmp(c.Header.UpperBound) > 0 {
			return diag.SolutionViolation("", "upper bound violated")
		}
		if !c.Header.IsMin && c.Header.CheckLower && c.BestObjective.Cmp(c.Header.LowerBound) < 0 {
			return diag.SolutionViolation("", "lower bound violated")
		}
	}

	return nil
}
