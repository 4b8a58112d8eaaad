package constraint

// Sense is the tri-state {<=, =, >=} encoded as -1, 0, +1.
type Sense int8

const (
	LE Sense = -1
	EQ Sense = 0
	GE Sense = 1
)

// ParseSense maps the certificate's {E,L,G} sense character.
func ParseSense(c byte) (Sense, bool) {
	switch c {
	case 'E':
		return EQ, true
	case 'L':
		return LE, true
	case 'G':
		return GE, true
	default:
		return 0, false
	}
}

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Char returns the certificate encoding of s.
func (s Sense) Char() byte {
	switch s {
	case LE:
		return 'L'
	case GE:
		return 'G'
	default:
		return 'E'
	}
}

// sgn returns -1, 0, or 1 for a negative, zero, or positive int.
func sgn(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Combine composes a sense with the sign of a multiplier, as used by the
// lin/rnd sign discipline: s = sense(i) * sign(lambda_i).
func (s Sense) Combine(multiplierSign int) int { return int(s) * sgn(multiplierSign) }
