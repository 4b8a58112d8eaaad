package svector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"vipr/internal/rational"
)

func r(s string) rational.Rat {
	v, err := rational.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCompactifyDropsZeros(t *testing.T) {
	v := Vector{0: r("0"), 1: r("5"), 2: r("0")}
	v.Compactify()
	require.Len(t, v, 1)
	require.True(t, v[1].Equal(r("5")))
}

func TestEqualByValueNotIdentity(t *testing.T) {
	a := Vector{0: r("1"), 1: r("2")}
	b := a.Clone()
	require.True(t, Equal(a, b))
	b[2] = r("0") // zero entry must not break equality after compaction
	require.True(t, Equal(a, b))
}

func TestEqualDiffers(t *testing.T) {
	a := Vector{0: r("1")}
	b := Vector{0: r("2")}
	require.False(t, Equal(a, b))
}

func TestScalarProductMissingKeysAreZero(t *testing.T) {
	u := Vector{0: r("2"), 1: r("3")}
	v := Vector{0: r("5")}
	require.True(t, ScalarProduct(u, v).Equal(r("10")))
}

func TestSub(t *testing.T) {
	u := Vector{0: r("5"), 1: r("1")}
	v := Vector{0: r("5"), 2: r("3")}
	out := Sub(u, v)
	require.True(t, Equal(out, Vector{1: r("1"), 2: r("-3")}))
}

func TestAddScaled(t *testing.T) {
	u := Vector{0: r("1")}
	u.AddScaled(Vector{0: r("2"), 1: r("3")}, r("2"))
	require.True(t, u[0].Equal(r("5")))
	require.True(t, u[1].Equal(r("6")))
}
