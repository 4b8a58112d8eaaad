package verify

import (
	"testing"

	"github.com/stretchr/testify/require"
	"vipr/internal/constraint"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

func mustRat(t *testing.T, s string) rational.Rat {
	t.Helper()
	v, err := rational.Parse(s)
	require.NoError(t, err)
	return v
}

func newIntCtx(t *testing.T) *Context {
	c := newContext(nil, false)
	c.Header.NumVar = 1
	c.Header.IsInt = []bool{true}
	c.Header.IsMin = true
	c.Header.Objective = svector.Vector{0: mustRat(t, "1")}
	c.Header.ObjectiveIntegral = true
	return c
}

func TestSolCutoffAcceptsExactBoundary(t *testing.T) {
	c := newIntCtx(t)
	c.BestObjective = mustRat(t, "5")
	c.HaveSolution = true

	toDer := *constraint.New("d1", constraint.LE, mustRat(t, "4"), c.Header.Objective, false, nil)
	require.NoError(t, c.solCutoff("d1", toDer))
}

func TestSolCutoffRejectsBelowKnownCutoff(t *testing.T) {
	c := newIntCtx(t)
	c.BestObjective = mustRat(t, "5")
	c.HaveSolution = true

	toDer := *constraint.New("d1", constraint.LE, mustRat(t, "3"), c.Header.Objective, false, nil)
	require.Error(t, c.solCutoff("d1", toDer))
}

func TestSolCutoffRejectsNonObjectiveCoefficients(t *testing.T) {
	c := newIntCtx(t)
	c.BestObjective = mustRat(t, "5")

	other := svector.Vector{0: mustRat(t, "2")}
	toDer := *constraint.New("d1", constraint.LE, mustRat(t, "4"), other, false, nil)
	require.Error(t, c.solCutoff("d1", toDer))
}

func TestSolCutoffRejectsWrongSense(t *testing.T) {
	c := newIntCtx(t)
	c.BestObjective = mustRat(t, "5")

	toDer := *constraint.New("d1", constraint.GE, mustRat(t, "4"), c.Header.Objective, false, nil)
	require.Error(t, c.solCutoff("d1", toDer))
}

func TestCombineLinRequiresConsistentSign(t *testing.T) {
	c := newIntCtx(t)
	c.Table = append(c.Table,
		constraint.New("c1", constraint.GE, mustRat(t, "1"), svector.Vector{0: mustRat(t, "1")}, false, nil),
		constraint.New("c2", constraint.LE, mustRat(t, "1"), svector.Vector{0: mustRat(t, "1")}, false, nil),
	)
	entries := []multiplierEntry{
		{Index: 0, Mult: mustRat(t, "1")},
		{Index: 1, Mult: mustRat(t, "1")},
	}
	_, err := c.combineLin("d1", entries)
	require.Error(t, err)
}

func TestCombineLinUnionsAssumptionSets(t *testing.T) {
	c := newIntCtx(t)
	c1 := constraint.New("c1", constraint.GE, mustRat(t, "1"), svector.Vector{0: mustRat(t, "1")}, true, constraint.NewAssumptionSet(0))
	c2 := constraint.New("c2", constraint.GE, mustRat(t, "2"), svector.Vector{0: mustRat(t, "1")}, true, constraint.NewAssumptionSet(1))
	c.Table = append(c.Table, c1, c2)

	entries := []multiplierEntry{
		{Index: 0, Mult: mustRat(t, "1")},
		{Index: 1, Mult: mustRat(t, "1")},
	}
	combined, err := c.combineLin("d1", entries)
	require.NoError(t, err)
	require.True(t, combined.Assumptions.Contains(0))
	require.True(t, combined.Assumptions.Contains(1))
	require.Equal(t, 2, len(combined.Assumptions))
}

func TestCombineLinRejectsUseAfterTrash(t *testing.T) {
	c := newIntCtx(t)
	c1 := constraint.New("c1", constraint.GE, mustRat(t, "1"), svector.Vector{0: mustRat(t, "1")}, false, nil)
	c1.Trash()
	c.Table = append(c.Table, c1)

	entries := []multiplierEntry{{Index: 0, Mult: mustRat(t, "1")}}
	_, err := c.combineLin("d1", entries)
	require.Error(t, err)
}
