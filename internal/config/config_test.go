package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuexiangjys/xui/internal/home"
)

// isolate points the global config and data directories at temp dirs.
func isolate(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	configDir = t.TempDir()
	dataDir = t.TempDir()
	t.Setenv("XUI_GLOBAL_CONFIG", configDir)
	t.Setenv("XUI_GLOBAL_DATA", dataDir)
	t.Setenv("XUI_POSTHOG_KEY", "")
	return configDir, dataDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readConfigJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir(), false)
	require.NoError(t, err)
	require.NotNil(t, cfg.Options)
	require.NotNil(t, cfg.Options.TUI)
	require.Equal(t, 0, cfg.Options.TUI.RowGap())
	require.False(t, cfg.Options.Debug)
	require.Empty(t, cfg.LoadedFrom())
	require.Empty(t, cfg.CatalogPath())
}

func TestLoad_MergesInPriorityOrder(t *testing.T) {
	configDir, dataDir := isolate(t)
	workingDir := t.TempDir()

	writeFile(t, filepath.Join(configDir, "xui.json"), `{"options":{"tui":{"gap":1,"wrap_navigation":true},"catalog_file":"global.yaml"}}`)
	writeFile(t, filepath.Join(dataDir, "xui.json"), `{"options":{"tui":{"compact_mode":true}},"recent_components":["Button"]}`)
	writeFile(t, filepath.Join(workingDir, ".xui.json"), `{"options":{"tui":{"gap":2},"catalog_file":"catalog.yaml"}}`)

	cfg, err := Load(workingDir, true)
	require.NoError(t, err)
	require.Len(t, cfg.LoadedFrom(), 3)

	tui := cfg.Options.TUI
	require.Equal(t, 2, tui.RowGap())
	require.True(t, tui.WrapNavigation)
	require.True(t, tui.CompactMode)
	require.True(t, cfg.Options.Debug)
	require.Equal(t, []string{"Button"}, cfg.RecentComponents)
	require.Equal(t, filepath.Join(workingDir, "catalog.yaml"), cfg.CatalogPath())
}

func TestLoad_ParentProjectConfig(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	workingDir := filepath.Join(root, "app")

	writeFile(t, filepath.Join(root, "xui.json"), `{"options":{"tui":{"gap":1,"compact_mode":true}}}`)
	writeFile(t, filepath.Join(workingDir, "xui.json"), `{"options":{"tui":{"gap":3}}}`)

	cfg, err := Load(workingDir, false)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "xui.json"),
		filepath.Join(workingDir, "xui.json"),
	}, cfg.LoadedFrom())
	require.Equal(t, 3, cfg.Options.TUI.RowGap())
	require.True(t, cfg.Options.TUI.CompactMode)
}

func TestCatalogPath(t *testing.T) {
	t.Parallel()

	workingDir := t.TempDir()
	cfg := &Config{Options: &Options{}}
	cfg.setDefaults(workingDir, filepath.Join(workingDir, "xui.json"))
	require.Empty(t, cfg.CatalogPath())

	cfg.Options.CatalogFile = "catalogs/../catalog.yaml"
	require.Equal(t, filepath.Join(workingDir, "catalog.yaml"), cfg.CatalogPath())

	cfg.Options.CatalogFile = "~/catalog.yaml"
	require.Equal(t, filepath.Join(home.Dir(), "catalog.yaml"), cfg.CatalogPath())
}

func TestLoad_InvalidJSON(t *testing.T) {
	configDir, _ := isolate(t)
	writeFile(t, filepath.Join(configDir, "xui.json"), `{"options":`)

	_, err := Load(t.TempDir(), false)
	require.Error(t, err)
}

func TestSetCompactMode_Persists(t *testing.T) {
	_, dataDir := isolate(t)

	cfg, err := Load(t.TempDir(), false)
	require.NoError(t, err)
	require.NoError(t, cfg.SetCompactMode(true))
	require.True(t, cfg.Options.TUI.CompactMode)

	out := readConfigJSON(t, filepath.Join(dataDir, "xui.json"))
	require.Equal(t, map[string]any{"tui": map[string]any{"compact_mode": true}}, out["options"])

	reloaded, err := Load(t.TempDir(), false)
	require.NoError(t, err)
	require.True(t, reloaded.Options.TUI.CompactMode)
}

func TestRecordRecentComponent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &Config{}
	cfg.setDefaults(dir, filepath.Join(dir, "data", "xui.json"))

	require.NoError(t, cfg.RecordRecentComponent("Button"))
	require.NoError(t, cfg.RecordRecentComponent("Switch"))
	require.NoError(t, cfg.RecordRecentComponent("Button"))
	require.Equal(t, []string{"Button", "Switch"}, cfg.RecentComponents)

	out := readConfigJSON(t, cfg.dataConfigDir)
	require.Equal(t, []any{"Button", "Switch"}, out["recent_components"])
}

func TestRecordRecentComponent_TrimsToMax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &Config{}
	cfg.setDefaults(dir, filepath.Join(dir, "xui.json"))

	for _, title := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		require.NoError(t, cfg.RecordRecentComponent(title))
	}
	require.Equal(t, []string{"g", "f", "e", "d", "c"}, cfg.RecentComponents)
}

func TestRecordRecentComponent_NoPersistOnNoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &Config{}
	cfg.setDefaults(dir, filepath.Join(dir, "xui.json"))

	require.NoError(t, cfg.RecordRecentComponent(""))
	_, err := os.Stat(cfg.dataConfigDir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, cfg.RecordRecentComponent("Button"))
	require.NoError(t, os.Remove(cfg.dataConfigDir))

	// Already at the front: nothing is written.
	require.NoError(t, cfg.RecordRecentComponent("Button"))
	_, err = os.Stat(cfg.dataConfigDir)
	require.True(t, os.IsNotExist(err))
}

func TestSchema(t *testing.T) {
	t.Parallel()

	data, err := Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	require.Equal(t, schemaURL, schema["$id"])
	require.Contains(t, string(data), "compact_mode")
	require.Contains(t, string(data), "catalog_file")
	require.Contains(t, string(data), "recent_components")
}

func TestConfigManager(t *testing.T) {
	isolate(t)

	cm := NewConfigManager()
	require.Nil(t, cm.GetConfig())

	cfg, err := cm.InitConfig(t.TempDir(), false)
	require.NoError(t, err)
	require.Same(t, cfg, cm.GetConfig())

	cm.Reset()
	require.Nil(t, cm.GetConfig())
}
