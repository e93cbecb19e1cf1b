// Package home provides utilities for dealing with the user's home directory.
package home

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Dir returns the users home directory, or if it fails, a temporary directory
// created for this process.
var Dir = sync.OnceValue(func() string {
	home, err := os.UserHomeDir()
	if err == nil {
		return home
	}
	tmp, err := os.MkdirTemp("", "xui")
	if err != nil {
		slog.Error("Could not find the user home directory", "error", err)
		return ""
	}
	slog.Warn("Could not find the user home directory, using a temporary one", "home", tmp)
	return tmp
})

// Short replaces the home path from [Dir] with `~`.
func Short(p string) string {
	return shorten(p, Dir())
}

// Long expands a leading `~` to the home path from [Dir].
func Long(p string) string {
	return lengthen(p, Dir())
}

func shorten(p, home string) string {
	if home == "" || !strings.HasPrefix(p, home) {
		return p
	}
	return filepath.Join("~", strings.TrimPrefix(p, home))
}

func lengthen(p, home string) string {
	if home == "" || !strings.HasPrefix(p, "~") {
		return p
	}
	return strings.Replace(p, "~", home, 1)
}
