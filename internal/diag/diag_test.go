package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesLabel(t *testing.T) {
	err := DerivationInvalid("d1", "dominance failed")
	require.Contains(t, err.Error(), "d1")
	require.Contains(t, err.Error(), "V0300")
}

func TestReporterReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	code := r.Report(UndischargedAssumption([]int{1, 2}))
	require.Equal(t, -1, code)
	require.Contains(t, buf.String(), "V0401")
}

func TestReporterWarn(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Warn("no derivations needed for %s", "range -inf..inf")
	require.Contains(t, buf.String(), "warning:")
}
