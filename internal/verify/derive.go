package verify

import (
	"vipr/internal/certfile"
	"vipr/internal/constraint"
	"vipr/internal/diag"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

type multiplierEntry struct {
	Index int
	Mult  rational.Rat
}

// readMultipliers reads the "<k> <conIdx_0> <mult_0> ..." payload shared
// by lin and rnd, dropping zero multipliers as the grammar specifies.
func readMultipliers(r *certfile.Reader) ([]multiplierEntry, error) {
	k, err := r.ExpectInt("number of multipliers")
	if err != nil {
		return nil, err
	}
	entries := make([]multiplierEntry, 0, k)
	for i := 0; i < k; i++ {
		idx, err := r.ExpectInt("multiplier constraint index")
		if err != nil {
			return nil, err
		}
		mult, err := r.ExpectRat("multiplier value")
		if err != nil {
			return nil, err
		}
		if mult.IsZero() {
			continue
		}
		entries = append(entries, multiplierEntry{Index: idx, Mult: mult})
	}
	return entries, nil
}

// combineLin builds the nonnegative linear combination C = sum(lambda_i *
// C_i), enforcing the sign discipline of §4.5: every nonzero
// sense(i)*sign(lambda_i) must agree.
func (c *Context) combineLin(label string, entries []multiplierEntry) (*constraint.Constraint, error) {
	coef := svector.New()
	rhs := rational.Zero()
	assumptions := constraint.AssumptionSet{}
	senseAcc := 0

	for _, e := range entries {
		con, err := c.constraintAt(e.Index)
		if err != nil {
			return nil, err
		}
		s := con.Sense.Combine(e.Mult.Sign())
		if senseAcc == 0 {
			senseAcc = s
		} else if s != 0 && senseAcc != s {
			return nil, diag.DerivationInvalid(label, "coefficient has wrong sign for index %d", e.Index)
		}
		assumptions = constraint.Union(assumptions, con.Assumptions)
		coef.AddScaled(con.Coef, e.Mult)
		rhs = rhs.Add(e.Mult.Mul(con.Rhs))
	}
	coef.Compactify()

	combined := constraint.New("", constraint.Sense(senseAcc), rhs, coef, false, assumptions)
	return combined, nil
}

// canUnsplit implements the unsplit predicate of §4.5.
func (c *Context) canUnsplit(label string, toDer *constraint.Constraint, con1Idx, a1Idx, con2Idx, a2Idx int) (constraint.AssumptionSet, error) {
	c1, err := c.constraintAt(con1Idx)
	if err != nil {
		return nil, err
	}
	c2, err := c.constraintAt(con2Idx)
	if err != nil {
		return nil, err
	}
	if !c1.Dominates(toDer) || !c2.Dominates(toDer) {
		return nil, diag.DerivationInvalid(label, "unsplit operands do not dominate the asserted constraint")
	}

	asm1 := c1.Assumptions.Clone()
	asm2 := c2.Assumptions.Clone()
	if !asm1.Contains(a1Idx) {
		c.logf("Warning: %d not present in unsplit", a1Idx)
	}
	if !asm2.Contains(a2Idx) {
		c.logf("Warning: %d not present in unsplit", a2Idx)
	}
	asm1.Remove(a1Idx)
	asm2.Remove(a2Idx)
	merged := constraint.Union(asm1, asm2)

	branchAsm1, err := c.constraintAt(a1Idx)
	if err != nil {
		return nil, err
	}
	branchAsm2, err := c.constraintAt(a2Idx)
	if err != nil {
		return nil, err
	}

	if branchAsm1.Sense*branchAsm2.Sense != -1 {
		return nil, diag.DerivationInvalid(label, "branch assumptions must have opposite senses")
	}

	var tautology bool
	if branchAsm1.Sense == constraint.LE {
		tautology = branchAsm1.Rhs.Add(rational.NewInt(1)).Equal(branchAsm2.Rhs)
	} else {
		tautology = branchAsm1.Rhs.Equal(branchAsm2.Rhs.Add(rational.NewInt(1)))
	}
	if !tautology {
		return nil, diag.DerivationInvalid(label, "%s and %s do not form an integer disjunction", branchAsm1.Label, branchAsm2.Label)
	}

	if !svector.Equal(branchAsm1.Coef, branchAsm2.Coef) {
		return nil, diag.DerivationInvalid(label, "unsplit branch assumptions have different coefficients")
	}
	for idx, val := range branchAsm1.Coef {
		if !c.Header.isIntVar(idx) {
			return nil, diag.DerivationInvalid(label, "unsplit: noninteger variable index %d", idx)
		}
		if !val.IsInteger() {
			return nil, diag.DerivationInvalid(label, "unsplit: noninteger coefficient for index %d", idx)
		}
	}

	return merged, nil
}

// solCutoff implements the `sol` reason of §4.5.
func (c *Context) solCutoff(label string, toDer constraint.Constraint) error {
	if !svector.Equal(toDer.Coef, c.Header.Objective) {
		return diag.DerivationInvalid(label, "cutoff bound can only be applied to the objective")
	}
	if toDer.Sense != constraint.LE {
		return diag.DerivationInvalid(label, "cutoff bound should have sense L")
	}
	cutoff := c.BestObjective
	if c.Header.ObjectiveIntegral {
		cutoff = cutoff.Sub(rational.NewInt(1))
	}
	if toDer.Rhs.Cmp(cutoff) < 0 {
		return diag.DerivationInvalid(label, "no solution known with objective at most %s, best solution is %s", toDer.Rhs.String(), c.BestObjective.String())
	}
	return nil
}

func processDER(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing DER section...")
	if err := r.ExpectLiteral("DER"); err != nil {
		return err
	}
	numDer, err := r.ExpectInt("number of derivations")
	if err != nil {
		return err
	}
	c.logf("numberOfDerivations = %d", numDer)

	if numDer == 0 && c.Header.RTP == RTPInfeasible {
		return diag.DerivationInvalid("", "no derivations given to verify infeasibility")
	}
	if numDer == 0 && (!c.Header.CheckLower || !c.Header.CheckUpper) {
		if !c.Header.CheckLower && !c.Header.CheckUpper {
			c.logf("Warning: relation to prove has no finite bound; nothing was derived")
		}
		c.logf("Successfully checked solution for feasibility")
		return nil
	}

	for i := 0; i < numDer; i++ {
		lit, err := r.ExpectConstraintLiteral()
		if err != nil {
			return err
		}

		if err := r.ExpectLiteral("{"); err != nil {
			return err
		}
		kind, err := r.ExpectIdent("derivation kind")
		if err != nil {
			return err
		}

		newConIdx := len(c.Table)
		isAssumption := kind == "asm"
		toDer := constraint.New(lit.Label, lit.Sense, lit.Rhs, lit.Coef, isAssumption, nil)

		c.tracef("%d - deriving...%s", newConIdx, lit.Label)

		var assumptions constraint.AssumptionSet

		switch kind {
		case "asm":
			assumptions = constraint.NewAssumptionSet(newConIdx)
			if err := r.ExpectLiteral("}"); err != nil {
				return err
			}

		case "lin", "rnd":
			entries, err := readMultipliers(r)
			if err != nil {
				return err
			}
			if err := r.ExpectLiteral("}"); err != nil {
				return err
			}
			combined, err := c.combineLin(lit.Label, entries)
			if err != nil {
				return err
			}
			if kind == "rnd" {
				if err := combined.Round(c.Header.isIntVar); err != nil {
					return diag.DerivationInvalid(lit.Label, "%v", err)
				}
			}
			if !combined.Dominates(toDer) {
				return diag.DerivationInvalid(lit.Label, "failed to derive constraint %s: derived %s instead", lit.Label, combined.String())
			}
			assumptions = combined.Assumptions

		case "uns":
			con1, err := r.ExpectInt("uns con1")
			if err != nil {
				return err
			}
			a1, err := r.ExpectInt("uns a1")
			if err != nil {
				return err
			}
			con2, err := r.ExpectInt("uns con2")
			if err != nil {
				return err
			}
			a2, err := r.ExpectInt("uns a2")
			if err != nil {
				return err
			}
			if con1 < 0 || con1 >= newConIdx {
				return diag.ParseError(lit.Label, "con1 out of bounds: %d", con1)
			}
			if con2 < 0 || con2 >= newConIdx {
				return diag.ParseError(lit.Label, "con2 out of bounds: %d", con2)
			}
			merged, err := c.canUnsplit(lit.Label, toDer, con1, a1, con2, a2)
			if err != nil {
				return err
			}
			if err := r.ExpectLiteral("}"); err != nil {
				return err
			}
			assumptions = merged

		case "sol":
			if err := r.ExpectLiteral("}"); err != nil {
				return err
			}
			if err := c.solCutoff(lit.Label, *toDer); err != nil {
				return err
			}
			assumptions = constraint.AssumptionSet{}

		default:
			return diag.ParseError(lit.Label, "unknown derivation kind %q", kind)
		}

		toDer.Assumptions = assumptions

		refIdx, err := r.ExpectInt("max ref index")
		if err != nil {
			return err
		}
		toDer.MaxRefIdx = refIdx
		c.Table = append(c.Table, toDer)

		c.maybeTrash(newConIdx, i == numDer-1)

		if c.Verbose {
			c.tracef("%s", toDer.String())
		}
	}

	return c.finalVerdict()
}

// finalVerdict implements §4.5's "Final verdict" step.
func (c *Context) finalVerdict() error {
	last := c.Table[len(c.Table)-1]

	if !last.Assumptions.Empty() {
		return diag.UndischargedAssumption(last.Assumptions.Indices())
	}

	if c.Header.RTP == RTPInfeasible {
		if last.IsFalsehood() {
			c.logf("Infeasibility verified.")
			return nil
		}
		return diag.DerivationInvalid(last.Label, "failed to verify infeasibility")
	}

	if (c.Header.IsMin && c.Header.CheckLower) || (!c.Header.IsMin && c.Header.CheckUpper) {
		if c.SyntheticGoal.IsTautology() {
			c.logf("RTP is a tautology.")
			return nil
		}
		if !last.Dominates(c.SyntheticGoal) {
			if c.Header.IsMin {
				return diag.DerivationInvalid(last.Label, "failed to derive lower bound")
			}
			return diag.DerivationInvalid(last.Label, "failed to derive upper bound")
		}
		if c.HaveSolution {
			c.logf("Best objval over all solutions: %s", c.BestObjective.String())
		}
		c.logf("Successfully verified optimal value range.")
		return nil
	}

	c.logf("Nothing further to verify for the stated relation to prove.")
	return nil
}
