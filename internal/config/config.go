package config

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/sjson"

	"github.com/xuexiangjys/xui/internal/home"
)

const (
	appName = "xui"

	defaultGap = 0

	maxRecentComponents = 5
)

// Project configuration file names, in lookup order.
var projectConfigNames = []string{
	appName + ".json",
	"." + appName + ".json",
}

type TUIOptions struct {
	CompactMode    bool `json:"compact_mode,omitempty" jsonschema:"description=Render one line per row in the playground,default=false"`
	Gap            *int `json:"gap,omitempty" jsonschema:"description=Blank lines between list rows,minimum=0,maximum=3,default=0"`
	WrapNavigation bool `json:"wrap_navigation,omitempty" jsonschema:"description=Wrap the cursor from the last row to the first and back,default=false"`
	DisableMouse   bool `json:"disable_mouse,omitempty" jsonschema:"description=Disable mouse clicks and wheel scrolling,default=false"`
}

// RowGap returns the configured gap between rows.
func (t *TUIOptions) RowGap() int {
	if t == nil {
		return defaultGap
	}
	return max(0, ptrValOr(t.Gap, defaultGap))
}

type Telemetry struct {
	Key      string `json:"key,omitempty" jsonschema:"description=PostHog project API key; telemetry is off when empty"`
	Endpoint string `json:"endpoint,omitempty" jsonschema:"description=PostHog endpoint,format=uri,example=https://us.i.posthog.com"`
}

// JSONSchemaExtend hides the key from generated examples.
func (Telemetry) JSONSchemaExtend(schema *jsonschema.Schema) {
	if schema.Properties != nil {
		if prop, ok := schema.Properties.Get("key"); ok {
			prop.WriteOnly = true
		}
	}
}

type Options struct {
	TUI         *TUIOptions `json:"tui,omitempty" jsonschema:"description=Terminal user interface options"`
	Debug       bool        `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	CatalogFile string      `json:"catalog_file,omitempty" jsonschema:"description=YAML file replacing the built-in component catalog,example=catalog.yaml"`
	Telemetry   *Telemetry  `json:"telemetry,omitempty" jsonschema:"description=Opt-in usage events"`
}

type Config struct {
	Schema string `json:"$schema,omitempty"`

	Options *Options `json:"options,omitempty" jsonschema:"description=General application options"`

	// Recently opened catalog components, stored in the data directory config.
	RecentComponents []string `json:"recent_components,omitempty" jsonschema:"description=Recently opened components sorted by most recent first"`

	// Internal
	workingDir    string   `json:"-"`
	dataConfigDir string   `json:"-"`
	loadedFrom    []string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// LoadedFrom returns the configuration files that were merged, lowest
// priority first.
func (c *Config) LoadedFrom() []string {
	return slices.Clone(c.loadedFrom)
}

// CatalogPath resolves the catalog file against the working directory,
// expanding a leading `~`. It is empty when the built-in catalog is used.
func (c *Config) CatalogPath() string {
	if c.Options == nil || c.Options.CatalogFile == "" {
		return ""
	}
	p := home.Long(c.Options.CatalogFile)
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.workingDir, p)
	}
	return filepath.Clean(p)
}

func (c *Config) setDefaults(workingDir, dataConfigDir string) {
	c.workingDir = workingDir
	c.dataConfigDir = cmp.Or(dataConfigDir, GlobalConfigData())
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	if c.Options.Telemetry == nil {
		c.Options.Telemetry = &Telemetry{}
	}
	if c.Options.Telemetry.Key == "" {
		c.Options.Telemetry.Key = os.Getenv("XUI_POSTHOG_KEY")
	}
}

func (c *Config) SetCompactMode(enabled bool) error {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	c.Options.TUI.CompactMode = enabled
	return c.SetConfigField("options.tui.compact_mode", enabled)
}

// SetConfigField writes a single field to the data directory config.
func (c *Config) SetConfigField(key string, value any) error {
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// RecordRecentComponent moves title to the front of the recent components
// and persists the list.
func (c *Config) RecordRecentComponent(title string) error {
	if title == "" {
		return nil
	}

	current := c.RecentComponents
	updated := append(
		[]string{title},
		slices.DeleteFunc(slices.Clone(current), func(existing string) bool {
			return existing == title
		})...,
	)
	if len(updated) > maxRecentComponents {
		updated = updated[:maxRecentComponents]
	}
	if slices.Equal(current, updated) {
		return nil
	}

	c.RecentComponents = updated
	if err := c.SetConfigField("recent_components", updated); err != nil {
		return fmt.Errorf("failed to persist recent components: %w", err)
	}
	return nil
}

func ptrValOr[T any](t *T, el T) T {
	if t == nil {
		return el
	}
	return *t
}
