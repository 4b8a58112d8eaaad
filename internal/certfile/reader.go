package certfile

import (
	"strconv"

	"vipr/internal/constraint"
	"vipr/internal/diag"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

// Reader layers the VIPR grammar's typed reads on top of a Scanner. It
// holds the handful of pieces of state later tokens depend on: the
// number of variables (for index bounds checking) and the objective
// coefficient vector (for the "OBJ" sparse-vector keyword, §9).
type Reader struct {
	s         *Scanner
	NumVar    int
	Objective svector.Vector
}

func NewReader(src []byte) *Reader {
	return &Reader{s: NewScanner(src)}
}

func (r *Reader) Scanner() *Scanner { return r.s }

func (r *Reader) next(context string) (Token, error) {
	tok, err := r.s.NextToken()
	if err != nil {
		return Token{}, diag.ParseError("", "unexpected end of file while reading %s", context)
	}
	return tok, nil
}

// ExpectLiteral reads the next token and fails unless it equals want.
func (r *Reader) ExpectLiteral(want string) error {
	tok, err := r.next(want)
	if err != nil {
		return err
	}
	if tok.Text != want {
		return diag.ParseError("", "%q expected, read instead %q", want, tok.Text)
	}
	return nil
}

// ExpectIdent reads an arbitrary token (a label, keyword, or similar).
func (r *Reader) ExpectIdent(context string) (string, error) {
	tok, err := r.next(context)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

// ExpectInt reads an integer token.
func (r *Reader) ExpectInt(context string) (int, error) {
	tok, err := r.next(context)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(tok.Text)
	if convErr != nil {
		return 0, diag.ParseError("", "expected an integer while reading %s, read instead %q", context, tok.Text)
	}
	return n, nil
}

// ExpectRat reads a rational token (integer, p/q, or decimal).
func (r *Reader) ExpectRat(context string) (rational.Rat, error) {
	tok, err := r.next(context)
	if err != nil {
		return rational.Rat{}, err
	}
	val, parseErr := rational.Parse(tok.Text)
	if parseErr != nil {
		return rational.Rat{}, diag.ParseError("", "malformed rational %q while reading %s: %v", tok.Text, context, parseErr)
	}
	return val, nil
}

// ExpectSense reads an {E,L,G} sense character.
func (r *Reader) ExpectSense() (constraint.Sense, error) {
	tok, err := r.next("sense")
	if err != nil {
		return 0, err
	}
	if len(tok.Text) != 1 {
		return 0, diag.ParseError("", "unknown sense character %q", tok.Text)
	}
	sense, ok := constraint.ParseSense(tok.Text[0])
	if !ok {
		return 0, diag.ParseError("", "unknown sense character %q", tok.Text)
	}
	return sense, nil
}

// ExpectSparseVec reads a sparse vector literal: either the keyword "OBJ"
// (meaning "reuse the objective coefficients by reference") or an
// integer k followed by k (index, value) pairs. Indices outside
// [0, NumVar) are rejected.
func (r *Reader) ExpectSparseVec() (svector.Vector, error) {
	tok, err := r.next("sparse vector")
	if err != nil {
		return nil, err
	}
	if tok.Text == "OBJ" {
		return r.Objective, nil
	}
	k, convErr := strconv.Atoi(tok.Text)
	if convErr != nil {
		return nil, diag.ParseError("", "expected a sparse vector size or OBJ, read instead %q", tok.Text)
	}
	vec := make(svector.Vector, k)
	for i := 0; i < k; i++ {
		idx, err := r.ExpectInt("sparse vector index")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= r.NumVar {
			return nil, diag.ParseError("", "variable index %d out of bounds [0,%d)", idx, r.NumVar)
		}
		val, err := r.ExpectRat("sparse vector value")
		if err != nil {
			return nil, err
		}
		vec[idx] = val
	}
	vec.Compactify()
	return vec, nil
}

// ConstraintLiteral is the raw `label sense rhs sparseVec` quadruple.
type ConstraintLiteral struct {
	Label string
	Sense constraint.Sense
	Rhs   rational.Rat
	Coef  svector.Vector
}

// ReadVER skips any "%" comment lines (legal only before VER, per §4.4)
// and reads the VER section, returning its major/minor version.
func (r *Reader) ReadVER() (major, minor int, err error) {
	for {
		tok, tokErr := r.next("VER")
		if tokErr != nil {
			return 0, 0, tokErr
		}
		if tok.Text == "%" {
			r.s.SkipLine()
			continue
		}
		if tok.Text != "VER" {
			return 0, 0, diag.ParseError("", "comment or VER expected, read instead %q", tok.Text)
		}
		break
	}
	verTok, err := r.ExpectIdent("VER version number")
	if err != nil {
		return 0, 0, err
	}
	major, minor, ok := parseVersion(verTok)
	if !ok {
		return 0, 0, diag.ParseError("", "malformed version string %q", verTok)
	}
	return major, minor, nil
}

func parseVersion(s string) (major, minor int, ok bool) {
	dot := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return 0, 0, false
	}
	maj, err1 := strconv.Atoi(s[:dot])
	min, err2 := strconv.Atoi(s[dot+1:])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return maj, min, true
}

// RawSparseVec is a sparse-vector literal read without semantic
// validation, used by the reorderer's two passes: it needs only the
// referenced indices and the unparsed value text, to rewrite references
// and copy values byte-for-byte into the rewritten certificate.
type RawSparseVec struct {
	IsObj   bool
	Indices []int
	Values  []string // raw value text, parallel to Indices
}

// ReadRawSparseVec reads a sparse vector literal without resolving OBJ or
// validating index bounds.
func (r *Reader) ReadRawSparseVec() (RawSparseVec, error) {
	tok, err := r.next("sparse vector")
	if err != nil {
		return RawSparseVec{}, err
	}
	if tok.Text == "OBJ" {
		return RawSparseVec{IsObj: true}, nil
	}
	k, convErr := strconv.Atoi(tok.Text)
	if convErr != nil {
		return RawSparseVec{}, diag.ParseError("", "expected a sparse vector size or OBJ, read instead %q", tok.Text)
	}
	out := RawSparseVec{Indices: make([]int, k), Values: make([]string, k)}
	for i := 0; i < k; i++ {
		idx, err := r.ExpectInt("sparse vector index")
		if err != nil {
			return RawSparseVec{}, err
		}
		val, err := r.next("sparse vector value")
		if err != nil {
			return RawSparseVec{}, err
		}
		out.Indices[i] = idx
		out.Values[i] = val.Text
	}
	return out, nil
}

// ExpectConstraintLiteral reads one constraint literal.
func (r *Reader) ExpectConstraintLiteral() (ConstraintLiteral, error) {
	label, err := r.ExpectIdent("constraint label")
	if err != nil {
		return ConstraintLiteral{}, err
	}
	sense, err := r.ExpectSense()
	if err != nil {
		return ConstraintLiteral{}, err
	}
	rhs, err := r.ExpectRat("constraint rhs")
	if err != nil {
		return ConstraintLiteral{}, err
	}
	coef, err := r.ExpectSparseVec()
	if err != nil {
		return ConstraintLiteral{}, err
	}
	return ConstraintLiteral{Label: label, Sense: sense, Rhs: rhs, Coef: coef}, nil
}
