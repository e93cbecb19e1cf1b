package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/qjebbs/go-jsons"

	"github.com/xuexiangjys/xui/internal/fsext"
	"github.com/xuexiangjys/xui/internal/home"
)

// Load reads the global, data and project configuration files and merges
// them, later files taking precedence.
func Load(workingDir string, debug bool) (*Config, error) {
	paths := lookupConfigs(workingDir)

	cfg, loaded, err := loadFromPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.loadedFrom = loaded
	cfg.setDefaults(workingDir, "")
	if debug {
		cfg.Options.Debug = true
	}
	return cfg, nil
}

// lookupConfigs lists the candidate files from lowest to highest priority:
// global, data, project files in parent directories, then the working
// directory.
func lookupConfigs(workingDir string) []string {
	paths := []string{GlobalConfig(), GlobalConfigData()}
	parents, err := fsext.LookupParents(workingDir, projectConfigNames...)
	if err != nil {
		slog.Warn("Failed to look up parent configs", "dir", workingDir, "error", err)
	}
	paths = append(paths, parents...)
	for _, name := range projectConfigNames {
		paths = append(paths, filepath.Join(workingDir, name))
	}
	return paths
}

func loadFromPaths(paths []string) (*Config, []string, error) {
	var (
		readers []io.Reader
		loaded  []string
	)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		slog.Debug("Loading config file", "path", path)
		readers = append(readers, bytes.NewReader(data))
		loaded = append(loaded, path)
	}
	cfg, err := loadFromReaders(readers)
	return cfg, loaded, err
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return &Config{}, nil
	}
	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge config files: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal([]byte(merged), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// GlobalConfig returns the path to the main user configuration file.
func GlobalConfig() string {
	if p := os.Getenv("XUI_GLOBAL_CONFIG"); p != "" {
		return filepath.Join(p, fmt.Sprintf("%s.json", appName))
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fmt.Sprintf("%s.json", appName))
	}
	return filepath.Join(home.Dir(), ".config", appName, fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path to the configuration file written by the
// application itself.
func GlobalConfigData() string {
	return filepath.Join(DataDir(), fmt.Sprintf("%s.json", appName))
}

// DataDir returns the directory holding application data and logs.
func DataDir() string {
	if p := os.Getenv("XUI_GLOBAL_DATA"); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		localAppData := cmp.Or(
			os.Getenv("LOCALAPPDATA"),
			filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local"),
		)
		return filepath.Join(localAppData, appName)
	}
	return filepath.Join(home.Dir(), ".local", "share", appName)
}

// LogFile returns the path of the application log.
func LogFile() string {
	return filepath.Join(DataDir(), "logs", fmt.Sprintf("%s.log", appName))
}
