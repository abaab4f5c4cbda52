package loader

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keychar/internal/charmap"
)

// Config is the TOML layout configuration: where to find map files,
// what format to accept, and which overlays to layer on the base map.
type Config struct {
	// SearchPaths are directories searched for .kcm files.
	SearchPaths []string `toml:"search_paths"`

	// Base is the source name of the base map.
	Base string `toml:"base"`

	// Overlays are source names combined onto the base, in order.
	Overlays []string `toml:"overlays"`

	// Accept is the acceptance format: "base", "overlay" or "any".
	// Empty means "any".
	Accept string `toml:"accept"`
}

// Format returns the acceptance format declared by the config.
func (c *Config) Format() (charmap.Format, error) {
	if c.Accept == "" {
		return charmap.FormatAny, nil
	}
	format, ok := charmap.FormatFromName(c.Accept)
	if !ok {
		return 0, fmt.Errorf("unknown accept format %q", c.Accept)
	}
	return format, nil
}

// LoadConfig reads and decodes a TOML layout configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding layout config: %w", err)
	}
	if _, err := cfg.Format(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Build loads the configured base map, applies the configured overlays
// and returns the combined map.
func (c *Config) Build() (*charmap.Map, error) {
	if c.Base == "" {
		return nil, fmt.Errorf("layout config declares no base map")
	}
	format, err := c.Format()
	if err != nil {
		return nil, err
	}
	src := NewFileSource(c.SearchPaths...)
	base, err := New(src, WithFormat(format)).Load(c.Base)
	if err != nil {
		return nil, err
	}
	overlayLoader := New(src, WithFormat(charmap.FormatOverlay))
	for _, name := range c.Overlays {
		overlay, err := overlayLoader.Load(name)
		if err != nil {
			return nil, err
		}
		if err := base.Combine(overlay); err != nil {
			return nil, fmt.Errorf("combining overlay %q: %w", name, err)
		}
	}
	return base, nil
}
