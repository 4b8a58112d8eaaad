package verify

import (
	"fmt"

	"vipr/internal/certfile"
	"vipr/internal/constraint"
	"vipr/internal/diag"
	"vipr/internal/rational"
)

const supportedMajor = 1
const supportedMinor = 1 // verifier 2: adds "sol"

func processVER(r *certfile.Reader, c *Context) error {
	major, minor, err := r.ReadVER()
	if err != nil {
		return err
	}
	c.logf("Certificate format version %d.%d", major, minor)
	if major != supportedMajor || minor > supportedMinor {
		return diag.VersionUnsupported(fmt.Sprintf("%d.%d", major, minor))
	}
	return nil
}

func processVAR(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing VAR section...")
	if err := r.ExpectLiteral("VAR"); err != nil {
		return err
	}
	numVar, err := r.ExpectInt("number of variables")
	if err != nil {
		return err
	}
	if numVar < 0 {
		return diag.ParseError("", "invalid number after VAR: %d", numVar)
	}
	names := make([]string, numVar)
	for i := 0; i < numVar; i++ {
		name, err := r.ExpectIdent("variable name")
		if err != nil {
			return err
		}
		names[i] = name
	}
	c.Header.NumVar = numVar
	c.Header.VarNames = names
	r.NumVar = numVar
	return nil
}

func processINT(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing INT section...")
	if err := r.ExpectLiteral("INT"); err != nil {
		return err
	}
	numInt, err := r.ExpectInt("number of integer variables")
	if err != nil {
		return err
	}
	if numInt < 0 {
		return diag.ParseError("", "invalid number after INT: %d", numInt)
	}
	isInt := make([]bool, c.Header.NumVar)
	for i := 0; i < numInt; i++ {
		idx, err := r.ExpectInt("integer variable index")
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(isInt) {
			return diag.ParseError("", "integer variable index %d out of bounds", idx)
		}
		isInt[idx] = true
	}
	c.Header.IsInt = isInt
	return nil
}

func processOBJ(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing OBJ section...")
	if err := r.ExpectLiteral("OBJ"); err != nil {
		return err
	}
	sense, err := r.ExpectIdent("objective sense")
	if err != nil {
		return err
	}
	switch sense {
	case "min":
		c.Header.IsMin = true
	case "max":
		c.Header.IsMin = false
	default:
		return diag.ParseError("", "invalid objective sense: %s", sense)
	}

	coef, err := r.ExpectSparseVec()
	if err != nil {
		return err
	}
	c.Header.Objective = coef
	r.Objective = coef

	integral := true
	for idx, val := range coef {
		if !val.IsInteger() || !c.Header.isIntVar(idx) {
			integral = false
			break
		}
	}
	c.Header.ObjectiveIntegral = integral
	return nil
}

func processCON(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing CON section...")
	if err := r.ExpectLiteral("CON"); err != nil {
		return err
	}
	numCon, err := r.ExpectInt("number of constraints")
	if err != nil {
		return err
	}
	numBnd, err := r.ExpectInt("number of bounds")
	if err != nil {
		return err
	}
	if numCon < 0 || numBnd < 0 {
		return diag.ParseError("", "invalid number(s) after CON")
	}
	for i := 0; i < numCon; i++ {
		lit, err := r.ExpectConstraintLiteral()
		if err != nil {
			return err
		}
		con := constraint.New(lit.Label, lit.Sense, lit.Rhs, lit.Coef, false, nil)
		con.MaxRefIdx = -1
		c.Table = append(c.Table, con)
	}
	c.NumCon = numCon
	return nil
}

func processRTP(r *certfile.Reader, c *Context) error {
	c.logf("\nProcessing RTP section...")
	if err := r.ExpectLiteral("RTP"); err != nil {
		return err
	}
	kind, err := r.ExpectIdent("RTP kind")
	if err != nil {
		return err
	}
	switch kind {
	case "infeas":
		c.Header.RTP = RTPInfeasible
		c.logf("\nNeed to verify infeasibility.")
		return nil
	case "range":
		// handled below
	default:
		return diag.ParseError("", "unrecognized RTP verification type: %s", kind)
	}

	c.Header.RTP = RTPRange
	lowerStr, err := r.ExpectIdent("RTP lower bound")
	if err != nil {
		return err
	}
	upperStr, err := r.ExpectIdent("RTP upper bound")
	if err != nil {
		return err
	}
	c.Header.LowerStr, c.Header.UpperStr = lowerStr, upperStr

	if lowerStr != "-inf" {
		c.Header.CheckLower = true
		v, err := parseBound(lowerStr)
		if err != nil {
			return err
		}
		c.Header.LowerBound = v
	}
	if upperStr != "inf" {
		c.Header.CheckUpper = true
		v, err := parseBound(upperStr)
		if err != nil {
			return err
		}
		c.Header.UpperBound = v
	}

	if c.Header.CheckLower && c.Header.CheckUpper && c.Header.LowerBound.Cmp(c.Header.UpperBound) > 0 {
		return diag.ParseError("", "RTP: invalid bounds")
	}

	if c.Header.IsMin && c.Header.CheckLower {
		c.SyntheticGoal = constraint.New("rtp", constraint.GE, c.Header.LowerBound, c.Header.Objective, false, nil)
	} else if !c.Header.IsMin && c.Header.CheckUpper {
		c.SyntheticGoal = constraint.New("rtp", constraint.LE, c.Header.UpperBound, c.Header.Objective, false, nil)
	}

	open := "["
	if lowerStr == "-inf" {
		open = "("
	}
	closeBr := "]"
	if upperStr == "inf" {
		closeBr = ")"
	}
	c.logf("Need to verify optimal value range %s%s, %s%s.", open, lowerStr, upperStr, closeBr)
	return nil
}

func parseBound(s string) (rational.Rat, error) {
	v, err := rational.Parse(s)
	if err != nil {
		return rational.Rat{}, diag.ParseError("", "malformed RTP bound %q: %v", s, err)
	}
	return v, nil
}
