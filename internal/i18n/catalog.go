package i18n

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed en.yaml
var defaultCatalog []byte

// Catalog is an immutable key to template table.
type Catalog struct {
	// entries maps translation keys to templates.
	entries map[string]string
}

// Default returns the built-in English catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("parse embedded catalog: %v", err))
	}

	return c
}

// Parse decodes a YAML mapping of keys to templates.
func Parse(data []byte) (*Catalog, error) {
	entries := make(map[string]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}

	return &Catalog{entries: entries}, nil
}

// Load reads a YAML catalog from disk and layers it over the default one.
// An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	override, err := Parse(contents)
	if err != nil {
		return nil, err
	}

	return Default().Merge(override), nil
}

// Merge returns a catalog where entries of other win over entries of c.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	entries := maps.Clone(c.entries)
	maps.Copy(entries, other.entries)

	return &Catalog{entries: entries}
}

// Has reports whether the key is present.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]

	return ok
}

// Translate resolves key and substitutes {0}, {1}, ... with args.
// A missing key resolves to the key itself so the gap is visible in game.
func (c *Catalog) Translate(key string, args ...string) string {
	template, ok := c.entries[key]
	if !ok {
		return key
	}

	if len(args) == 0 {
		return template
	}

	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
