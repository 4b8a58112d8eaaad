package rational

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Rat {
	t.Helper()
	r, err := Parse(s)
	require.NoError(t, err)
	return r
}

func TestParseIntegerAndFraction(t *testing.T) {
	require.Equal(t, "3", mustParse(t, "3").String())
	require.Equal(t, "-3", mustParse(t, "-3").String())
	require.Equal(t, "1/2", mustParse(t, "1/2").String())
	require.Equal(t, "-1/2", mustParse(t, "-1/2").String())
}

func TestParseDecimal(t *testing.T) {
	require.True(t, mustParse(t, "0.5").Equal(mustParse(t, "1/2")))
	require.True(t, mustParse(t, "-2.25").Equal(mustParse(t, "-9/4")))
}

func TestParseRejectsZeroDenominator(t *testing.T) {
	_, err := Parse("1/0")
	require.Error(t, err)
}

func TestParseRejectsNonpositiveDenominator(t *testing.T) {
	_, err := Parse("1/-2")
	require.Error(t, err)
}

func TestFloorCeil(t *testing.T) {
	cases := []struct {
		in, floor, ceil string
	}{
		{"3/2", "1", "2"},
		{"-3/2", "-2", "-1"},
		{"4", "4", "4"},
		{"0", "0", "0"},
	}
	for _, c := range cases {
		r := mustParse(t, c.in)
		require.Equal(t, c.floor, r.Floor().String(), "floor(%s)", c.in)
		require.Equal(t, c.ceil, r.Ceil().String(), "ceil(%s)", c.in)
	}
}

func TestIsInteger(t *testing.T) {
	require.True(t, mustParse(t, "4").IsInteger())
	require.True(t, mustParse(t, "4/2").IsInteger())
	require.False(t, mustParse(t, "3/2").IsInteger())
}

func TestArithmetic(t *testing.T) {
	a := mustParse(t, "1/2")
	b := mustParse(t, "1/3")
	require.True(t, a.Add(b).Equal(mustParse(t, "5/6")))
	require.True(t, a.Sub(b).Equal(mustParse(t, "1/6")))
	require.True(t, a.Mul(b).Equal(mustParse(t, "1/6")))
	require.True(t, a.Div(b).Equal(mustParse(t, "3/2")))
}

func TestSign(t *testing.T) {
	require.Equal(t, -1, mustParse(t, "-4").Sign())
	require.Equal(t, 0, mustParse(t, "0").Sign())
	require.Equal(t, 1, mustParse(t, "4").Sign())
}
