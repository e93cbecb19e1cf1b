package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log/v2"
	"github.com/stretchr/testify/require"
)

func newTestLogger(b *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(b, log.Options{Level: log.DebugLevel})
}

func TestPrintLogLine(t *testing.T) {
	var b bytes.Buffer
	logger := newTestLogger(&b)

	printLogLine(logger, `{"time":"2025-01-02T03:04:05Z","level":"WARN","source":{"file":"/src/tui.go","line":42},"msg":"Unknown page","page":"settings"}`)
	out := b.String()
	require.Contains(t, out, "Unknown page")
	require.Contains(t, out, "/src/tui.go:42")
	require.Contains(t, out, "settings")
}

func TestPrintLogLine_SkipsGarbage(t *testing.T) {
	var b bytes.Buffer
	printLogLine(newTestLogger(&b), "not json")
	require.Empty(t, b.String())
}

func TestShowLogs_Tail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xui.log")
	var lines []string
	for _, msg := range []string{"first", "second", "third"} {
		lines = append(lines, `{"time":"2025-01-02T03:04:05Z","level":"INFO","msg":"`+msg+`"}`)
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	var b bytes.Buffer
	require.NoError(t, showLogs(newTestLogger(&b), path, 2))
	out := b.String()
	require.NotContains(t, out, "first")
	require.Contains(t, out, "second")
	require.Contains(t, out, "third")
}
