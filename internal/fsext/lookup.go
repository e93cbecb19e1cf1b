// Package fsext holds filesystem helpers.
package fsext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/xuexiangjys/xui/internal/home"
)

// LookupParents returns the targets that exist in the parent directories of
// dir, outermost first, so callers merging them let closer files win. dir
// itself is not searched. The walk stops below the home directory and at the
// filesystem root.
func LookupParents(dir string, targets ...string) ([]string, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	cwd, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to absolute path: %w", dir, err)
	}

	stop := home.Dir()
	var found []string
	for {
		parent := filepath.Dir(cwd)
		if parent == cwd || parent == stop {
			break
		}
		cwd = parent

		// Walked backwards so one directory keeps target order after the
		// final reverse.
		for _, target := range slices.Backward(targets) {
			fpath := filepath.Join(cwd, target)
			info, err := os.Stat(fpath)
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("error probing file %s: %w", fpath, err)
			}
			if info.IsDir() {
				continue
			}
			found = append(found, fpath)
		}
	}
	slices.Reverse(found)
	return found, nil
}
