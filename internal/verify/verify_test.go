package verify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyFailsToDeriveWrongLinCombination(t *testing.T) {
	cert := `
VER 1.1
VAR 2 x y
INT 0
OBJ min 1 0 1
CON 2 0
c1 G 0 2 0 1 1 1
c2 G 0 2 0 1 1 -1
RTP infeas
SOL 0
DER 1
d1 G 1 1 1 1 { lin 2 0 1 1 1 } -1
`
	err := Verify([]byte(cert), Options{})
	require.Error(t, err)
}

func TestVerifyRangeFromHalfHalfCombination(t *testing.T) {
	cert := `
VER 1.1
VAR 2 x y
INT 0
OBJ min 1 0 1
CON 2 0
c1 G 0 2 0 1 1 1
c2 G 0 2 0 1 1 -1
RTP range 0 inf
SOL 0
DER 1
d1 G 0 OBJ { lin 2 0 1/2 1 1/2 } -1
`
	err := Verify([]byte(cert), Options{})
	require.NoError(t, err)
}

func TestVerifyInfeasibilityByChvatalGomoryCut(t *testing.T) {
	cert := `
VER 1.1
VAR 1 x
INT 1 0
OBJ min 1 0 1
CON 2 0
c1 G 1 1 0 2
c2 L 1 1 0 2
RTP infeas
SOL 0
DER 3
d1 G 1 1 0 1 { rnd 1 0 1/2 } -1
d2 L 0 1 0 1 { rnd 1 1 1/2 } -1
d3 G 1 0 { lin 2 2 1 3 -1 } -1
`
	err := Verify([]byte(cert), Options{})
	require.NoError(t, err)
}

func TestVerifyUnsplitDischargesBranchAssumptions(t *testing.T) {
	cert := `
VER 1.1
VAR 1 x
INT 1 0
OBJ min 0
CON 2 0
c1 G 1 1 0 1
c2 L 0 1 0 1
RTP infeas
SOL 0
DER 5
a1 L 0 1 0 1 { asm } -1
a2 G 1 1 0 1 { asm } -1
d1 G 1 0 { lin 2 0 1 2 -1 } -1
d2 G 1 0 { lin 2 3 1 1 -1 } -1
d3 G 1 0 { uns 4 2 5 3 } -1
`
	err := Verify([]byte(cert), Options{})
	require.NoError(t, err)
}

func TestVerifyIsDeterministic(t *testing.T) {
	cert := `
VER 1.1
VAR 1 x
INT 1 0
OBJ min 1 0 1
CON 2 0
c1 G 1 1 0 2
c2 L 1 1 0 2
RTP infeas
SOL 0
DER 3
d1 G 1 1 0 1 { rnd 1 0 1/2 } -1
d2 L 0 1 0 1 { rnd 1 1 1/2 } -1
d3 G 1 0 { lin 2 2 1 3 -1 } -1
`
	err1 := Verify([]byte(cert), Options{})
	err2 := Verify([]byte(cert), Options{})
	require.Equal(t, err1, err2)
}

func TestVerifyRejectsUndischargedAssumption(t *testing.T) {
	cert := `
VER 1.1
VAR 1 x
INT 1 0
OBJ min 0
CON 0 0
RTP infeas
SOL 0
DER 1
a1 L 0 1 0 1 { asm } -1
`
	err := Verify([]byte(cert), Options{})
	require.Error(t, err)
}
