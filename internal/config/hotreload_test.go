package config

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startReloader(t *testing.T, cfg *Config, callback HotReloaderCallback) *HotReloader {
	t.Helper()
	hr, err := NewHotReloader(cfg)
	require.NoError(t, err)
	hr.debounce = 10 * time.Millisecond
	hr.AddCallback(callback)
	require.NoError(t, hr.Start())
	t.Cleanup(func() { require.NoError(t, hr.Stop()) })
	return hr
}

func TestHotReloader_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	workingDir := t.TempDir()
	projectFile := filepath.Join(workingDir, "xui.json")
	writeFile(t, projectFile, `{"options":{"tui":{"gap":1}}}`)

	cfg, err := Load(workingDir, false)
	require.NoError(t, err)

	var gap atomic.Int64
	hr := startReloader(t, cfg, func(c *Config, _ []string) error {
		gap.Store(int64(c.Options.TUI.RowGap()))
		return nil
	})

	writeFile(t, projectFile, `{"options":{"tui":{"gap":3}}}`)

	require.Eventually(t, func() bool {
		return gap.Load() == 3
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return hr.GetConfig().Options.TUI.RowGap() == 3
	}, time.Second, 10*time.Millisecond)
}

func TestHotReloader_IgnoresOwnWrites(t *testing.T) {
	isolate(t)
	workingDir := t.TempDir()

	cfg, err := Load(workingDir, false)
	require.NoError(t, err)

	var reloads atomic.Int64
	startReloader(t, cfg, func(*Config, []string) error {
		reloads.Add(1)
		return nil
	})

	require.NoError(t, cfg.RecordRecentComponent("Button"))
	require.NoError(t, cfg.SetCompactMode(true))
	require.Never(t, func() bool {
		return reloads.Load() > 0
	}, 300*time.Millisecond, 20*time.Millisecond)

	// The watcher is still alive for the files a user edits.
	writeFile(t, filepath.Join(workingDir, "xui.json"), `{"options":{"tui":{"gap":2}}}`)
	require.Eventually(t, func() bool {
		return reloads.Load() == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestHotReloader_FollowsCatalogFile(t *testing.T) {
	isolate(t)
	workingDir := t.TempDir()
	projectFile := filepath.Join(workingDir, "xui.json")
	first := filepath.Join(workingDir, "first", "catalog.yaml")
	second := filepath.Join(workingDir, "second", "catalog.yaml")
	writeFile(t, first, "groups: []\n")
	writeFile(t, second, "groups: []\n")
	writeFile(t, projectFile, `{"options":{"catalog_file":"first/catalog.yaml"}}`)

	cfg, err := Load(workingDir, false)
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		changes [][]string
	)
	seen := func(path string) bool {
		mu.Lock()
		defer mu.Unlock()
		return slices.ContainsFunc(changes, func(c []string) bool {
			return slices.Contains(c, path)
		})
	}
	hr := startReloader(t, cfg, func(_ *Config, changed []string) error {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, changed)
		return nil
	})

	writeFile(t, projectFile, `{"options":{"catalog_file":"second/catalog.yaml"}}`)
	require.Eventually(t, func() bool {
		return hr.GetConfig().CatalogPath() == second
	}, 5*time.Second, 20*time.Millisecond)
	require.True(t, seen(projectFile))

	require.NoError(t, os.WriteFile(second, []byte("groups:\n  - name: custom\n"), 0o644))
	require.Eventually(t, func() bool {
		return seen(second)
	}, 5*time.Second, 20*time.Millisecond)
}

func TestHotReloader_StopWithoutStart(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir(), false)
	require.NoError(t, err)
	hr, err := NewHotReloader(cfg)
	require.NoError(t, err)
	require.NoError(t, hr.Stop())
}

func TestWatchPaths(t *testing.T) {
	configDir, dataDir := isolate(t)
	workingDir := t.TempDir()

	cfg, err := Load(workingDir, false)
	require.NoError(t, err)
	cfg.Options.CatalogFile = "catalog.yaml"

	paths := watchPaths(cfg)
	require.True(t, paths[filepath.Join(configDir, "xui.json")])
	require.True(t, paths[filepath.Join(workingDir, "xui.json")])
	require.True(t, paths[filepath.Join(workingDir, "catalog.yaml")])
	require.False(t, paths[filepath.Join(dataDir, "xui.json")])
}
