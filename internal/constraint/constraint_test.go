package constraint

import (
	"testing"

	"github.com/stretchr/testify/require"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

func r(s string) rational.Rat {
	v, err := rational.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestFalsehood(t *testing.T) {
	c := New("f", GE, r("1"), svector.New(), false, nil)
	require.True(t, c.IsFalsehood())

	c2 := New("f2", LE, r("-1"), svector.New(), false, nil)
	require.True(t, c2.IsFalsehood())

	c3 := New("ok", GE, r("0"), svector.New(), false, nil)
	require.False(t, c3.IsFalsehood())
}

func TestTautology(t *testing.T) {
	require.True(t, New("t", LE, r("1"), svector.New(), false, nil).IsTautology())
	require.True(t, New("t", GE, r("-1"), svector.New(), false, nil).IsTautology())
	require.True(t, New("t", EQ, r("0"), svector.New(), false, nil).IsTautology())
	require.False(t, New("t", EQ, r("1"), svector.New(), false, nil).IsTautology())
}

// Domination reflexivity: every non-falsehood constraint dominates itself.
func TestDominatesReflexive(t *testing.T) {
	c := New("c", GE, r("3"), svector.Vector{0: r("1")}, false, nil)
	require.True(t, c.Dominates(c))
}

func TestFalsehoodDominatesAnything(t *testing.T) {
	f := New("f", GE, r("1"), svector.New(), false, nil)
	other := New("other", LE, r("-5"), svector.Vector{3: r("2")}, false, nil)
	require.True(t, f.Dominates(other))
}

func TestDominatesRequiresTighterRhs(t *testing.T) {
	c1 := New("c1", GE, r("3"), svector.Vector{0: r("1")}, false, nil)
	c2 := New("c2", GE, r("5"), svector.Vector{0: r("1")}, false, nil)
	require.False(t, c1.Dominates(c2))
	require.True(t, c2.Dominates(c1))
}

func TestRoundDecreasesLE(t *testing.T) {
	c := New("c", LE, r("3/2"), svector.Vector{0: r("1")}, false, nil)
	isInt := func(int) bool { return true }
	require.NoError(t, c.Round(isInt))
	require.True(t, c.Rhs.Equal(r("1")))
}

func TestRoundIncreasesGE(t *testing.T) {
	c := New("c", GE, r("3/2"), svector.Vector{0: r("1")}, false, nil)
	isInt := func(int) bool { return true }
	require.NoError(t, c.Round(isInt))
	require.True(t, c.Rhs.Equal(r("2")))
}

func TestRoundLeavesEqUnchanged(t *testing.T) {
	c := New("c", EQ, r("3/2"), svector.New(), false, nil)
	require.NoError(t, c.Round(func(int) bool { return true }))
	require.True(t, c.Rhs.Equal(r("3/2")))
}

func TestRoundRejectsNonIntegerCoefficient(t *testing.T) {
	c := New("c", LE, r("3"), svector.Vector{0: r("1/2")}, false, nil)
	err := c.Round(func(int) bool { return true })
	require.ErrorIs(t, err, ErrCoefficientNotInteger)
}

func TestTrashReleasesData(t *testing.T) {
	c := New("c", GE, r("1"), svector.Vector{0: r("1")}, false, nil)
	c.Trash()
	require.True(t, c.Trashed())
	require.False(t, c.IsFalsehood())
	require.False(t, c.IsTautology())
}
