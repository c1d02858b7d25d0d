package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNoOutput checks that a failed run left the output directory absent
// or empty.
func AssertNoOutput(t *testing.T, result *HarnessResult) {
	t.Helper()

	entries, err := os.ReadDir(result.OutputDir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)
	require.Empty(t, entries, "expected no generated output in %s", result.OutputDir)
}
