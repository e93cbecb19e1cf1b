// Package term answers questions about the terminal xui runs in.
package term

import (
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return xterm.IsTerminal(f.Fd())
}

// SupportsMouse reports whether mouse reporting should be enabled. Some
// multiplexers and dumb terminals garble mouse sequences.
func SupportsMouse() bool {
	termName := strings.ToLower(os.Getenv("TERM"))
	if termName == "dumb" || termName == "" {
		return false
	}
	_, isWindowsTerminal := os.LookupEnv("WT_SESSION")
	return isWindowsTerminal || !strings.HasPrefix(termName, "screen")
}
