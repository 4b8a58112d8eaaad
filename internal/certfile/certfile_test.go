package certfile

import (
	"testing"

	"github.com/stretchr/testify/require"
	"vipr/internal/rational"
	"vipr/internal/svector"
)

func TestScannerTokenizesWhitespace(t *testing.T) {
	s := NewScanner([]byte("VER 1.0\n  VAR  2 x y"))
	var got []string
	for {
		tok, err := s.NextToken()
		if err != nil {
			break
		}
		got = append(got, tok.Text)
	}
	require.Equal(t, []string{"VER", "1.0", "VAR", "2", "x", "y"}, got)
}

func TestScannerSkipLine(t *testing.T) {
	s := NewScanner([]byte("% a comment\nVER 1.0"))
	tok, err := s.NextToken()
	require.NoError(t, err)
	require.Equal(t, "%", tok.Text)
	s.SkipLine()
	tok, err = s.NextToken()
	require.NoError(t, err)
	require.Equal(t, "VER", tok.Text)
}

func TestReaderReadVERSkipsComments(t *testing.T) {
	r := NewReader([]byte("% hello\n% world\nVER 1.1"))
	major, minor, err := r.ReadVER()
	require.NoError(t, err)
	require.Equal(t, 1, major)
	require.Equal(t, 1, minor)
}

func TestReaderExpectSparseVecBoundsCheck(t *testing.T) {
	r := NewReader([]byte("1 5 3"))
	r.NumVar = 2
	_, err := r.ExpectSparseVec()
	require.Error(t, err)
}

func TestReaderExpectSparseVecOBJReference(t *testing.T) {
	r := NewReader([]byte("OBJ"))
	want := svector.Vector{0: mustRat(t, "3/2")}
	r.Objective = want
	r.NumVar = 1
	got, err := r.ExpectSparseVec()
	require.NoError(t, err)
	require.True(t, svector.Equal(got, want))
}

func mustRat(t *testing.T, s string) rational.Rat {
	t.Helper()
	v, err := rational.Parse(s)
	require.NoError(t, err)
	return v
}
