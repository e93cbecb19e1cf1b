package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cleaned := false
	func() {
		defer RecoverPanic("worker", func() { cleaned = true })
		panic("boom")
	}()
	require.True(t, cleaned)

	matches, err := filepath.Glob(filepath.Join(dir, "xui-panic-worker-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.Contains(t, string(content), "Panic in worker: boom")
}

func TestRecoverPanicWithoutPanic(t *testing.T) {
	t.Parallel()

	cleaned := false
	func() {
		defer RecoverPanic("idle", func() { cleaned = true })
	}()
	require.False(t, cleaned)
}
