package config

import (
	"context"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/xuexiangjys/xui/internal/log"
)

// HotReloaderCallback is called with the freshly loaded configuration and the
// watched files that changed since the previous reload. An error keeps the
// previous configuration active.
type HotReloaderCallback func(cfg *Config, changed []string) error

// HotReloader reloads the configuration when one of the watched files
// changes. The data directory config is not watched: only the application
// writes it.
type HotReloader struct {
	mu         sync.RWMutex
	config     *Config
	workingDir string
	debug      bool
	paths      map[string]bool
	dirs       map[string]bool
	watcher    *fsnotify.Watcher
	callbacks  []HotReloaderCallback
	debounce   time.Duration
	ctx        context.Context
	cancel     context.CancelFunc
	started    bool
	done       chan struct{}
}

// NewHotReloader watches the configuration files of cfg and the catalog file
// it points to.
func NewHotReloader(cfg *Config) (*HotReloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	hr := &HotReloader{
		config:     cfg,
		workingDir: cfg.WorkingDir(),
		debug:      cfg.Options != nil && cfg.Options.Debug,
		dirs:       make(map[string]bool),
		watcher:    watcher,
		debounce:   250 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	hr.paths = watchPaths(cfg)
	return hr, nil
}

// watchPaths lists the files whose changes trigger a reload of cfg.
func watchPaths(cfg *Config) map[string]bool {
	paths := make(map[string]bool)
	own := filepath.Clean(GlobalConfigData())
	for _, p := range append(lookupConfigs(cfg.WorkingDir()), cfg.CatalogPath()) {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if p == own {
			continue
		}
		paths[p] = true
	}
	return paths
}

// Start watches the directories of every path, so files created later are
// picked up too.
func (hr *HotReloader) Start() error {
	watched := hr.watchDirs()
	hr.started = true
	go hr.watchLoop()
	slog.Info("Configuration hot reloader started", "directories", watched)
	return nil
}

// watchDirs adds the directories of the current paths that are not watched
// yet and returns how many are watched in total.
func (hr *HotReloader) watchDirs() int {
	for p := range hr.paths {
		dir := filepath.Dir(p)
		if hr.dirs[dir] {
			continue
		}
		if err := hr.watcher.Add(dir); err != nil {
			slog.Debug("Not watching config directory", "dir", dir, "error", err)
			continue
		}
		hr.dirs[dir] = true
	}
	return len(hr.dirs)
}

func (hr *HotReloader) AddCallback(callback HotReloaderCallback) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	hr.callbacks = append(hr.callbacks, callback)
}

func (hr *HotReloader) GetConfig() *Config {
	hr.mu.RLock()
	defer hr.mu.RUnlock()
	return hr.config
}

func (hr *HotReloader) watchLoop() {
	defer close(hr.done)
	defer log.RecoverPanic("config.HotReloader", nil)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	changed := make(map[string]bool)
	for {
		select {
		case <-hr.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-hr.watcher.Events:
			if !ok {
				return
			}
			if !hr.paths[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("Configuration file changed", "file", event.Name, "op", event.Op.String())
			changed[filepath.Clean(event.Name)] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(hr.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			files := slices.Sorted(maps.Keys(changed))
			clear(changed)
			if err := hr.reload(files); err != nil {
				slog.Error("Failed to reload configuration", "error", err)
			}
		case err, ok := <-hr.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

func (hr *HotReloader) reload(changed []string) error {
	newConfig, err := Load(hr.workingDir, hr.debug)
	if err != nil {
		return err
	}

	hr.mu.RLock()
	callbacks := make([]HotReloaderCallback, len(hr.callbacks))
	copy(callbacks, hr.callbacks)
	hr.mu.RUnlock()

	for i, callback := range callbacks {
		if err := callback(newConfig, changed); err != nil {
			slog.Error("Configuration reload callback failed", "callback", i, "error", err)
			return err
		}
	}

	// The catalog file or the parent project configs may have moved.
	hr.paths = watchPaths(newConfig)
	hr.watchDirs()

	hr.mu.Lock()
	hr.config = newConfig
	hr.mu.Unlock()

	slog.Info("Configuration reloaded", "files", newConfig.LoadedFrom(), "changed", changed)
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (hr *HotReloader) Stop() error {
	hr.cancel()
	err := hr.watcher.Close()
	if hr.started {
		<-hr.done
	}
	return err
}
