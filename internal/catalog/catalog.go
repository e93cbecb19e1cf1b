// Package catalog holds the component entries listed by the catalog page.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrEmptyCatalog = errors.New("catalog has no entries")

// Entry is one row of the catalog.
type Entry struct {
	Group    string
	Title    string
	Subtitle string
}

func (e Entry) String() string {
	if e.Subtitle == "" {
		return e.Title
	}
	return e.Title + "\n" + e.Subtitle
}

// Description is shown when an entry is long clicked.
func (e Entry) Description() string {
	desc := e.Subtitle
	if desc == "" {
		desc = "no description"
	}
	return fmt.Sprintf("%s › %s: %s", GroupTitle(e.Group), e.Title, desc)
}

type Group struct {
	Name    string   `yaml:"name"`
	Entries []string `yaml:"entries"`
}

type Catalog struct {
	Groups []Group `yaml:"groups"`
}

// ParseEntry splits "Title\nSubtitle" at the first newline. A newline at
// the very start does not count: the whole content is then the title.
func ParseEntry(content string) (title, subtitle string) {
	if i := strings.Index(content, "\n"); i > 0 {
		return content[:i], content[i+1:]
	}
	return content, ""
}

// Parse reads a catalog in YAML form.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Entries()) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Load reads the catalog at path, or returns the built-in one when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Entries flattens the groups in file order.
func (c *Catalog) Entries() []Entry {
	var entries []Entry
	for _, g := range c.Groups {
		for _, content := range g.Entries {
			title, subtitle := ParseEntry(content)
			entries = append(entries, Entry{
				Group:    g.Name,
				Title:    title,
				Subtitle: subtitle,
			})
		}
	}
	return entries
}

// GroupTitle turns a group name into a display title.
func GroupTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
