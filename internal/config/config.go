package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// Config represents the tabview config.toml file
type Config struct {
	View    ViewConfig              `toml:"view"`
	Sources map[string]SourceConfig `toml:"source"`
}

// ViewConfig contains table display settings
type ViewConfig struct {
	PageSize    int      `toml:"page_size"`    // rows per page on start
	PageSizes   []int    `toml:"page_sizes"`   // sizes cycled with +/- in the TUI
	Locale      string   `toml:"locale"`       // BCP 47 tag for text collation
	DateLayouts []string `toml:"date_layouts"` // extra Go time layouts for date columns
}

// SourceConfig describes a named SQL source
type SourceConfig struct {
	Driver  string   `toml:"driver"` // "postgres" or "sqlite"
	DSN     string   `toml:"dsn"`
	Query   string   `toml:"query"`
	Columns []string `toml:"columns"` // display labels; empty = result columns
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		View: ViewConfig{
			PageSize:  10,
			PageSizes: []int{10, 25, 50, 100},
			Locale:    "en",
		},
		Sources: make(map[string]SourceConfig),
	}
}

// Path returns the path to the config file.
// Follows XDG Base Directory spec on Linux, platform conventions elsewhere
func Path() string {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, "Library", "Application Support", "tabview")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "tabview")
	default: // Linux and others - follow XDG
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "tabview")
		} else {
			home, _ := os.UserHomeDir()
			configDir = filepath.Join(home, ".config", "tabview")
		}
	}

	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file at path. A missing file yields the defaults;
// unset values in an existing file are filled from the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	loaded := &Config{}
	if _, err := toml.DecodeFile(path, loaded); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if loaded.View.PageSize != 0 {
		cfg.View.PageSize = loaded.View.PageSize
	}
	if len(loaded.View.PageSizes) > 0 {
		cfg.View.PageSizes = loaded.View.PageSizes
	}
	if loaded.View.Locale != "" {
		cfg.View.Locale = loaded.View.Locale
	}
	cfg.View.DateLayouts = loaded.View.DateLayouts
	for name, src := range loaded.Sources {
		cfg.Sources[name] = src
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config file to path
func (c *Config) Save(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// Validate checks value ranges and references
func (c *Config) Validate() error {
	if c.View.PageSize < 1 {
		return fmt.Errorf("view.page_size must be positive, got %d", c.View.PageSize)
	}
	for _, size := range c.View.PageSizes {
		if size < 1 {
			return fmt.Errorf("view.page_sizes must be positive, got %d", size)
		}
	}
	if _, err := c.Language(); err != nil {
		return err
	}
	for name, src := range c.Sources {
		switch src.Driver {
		case "postgres", "sqlite":
		default:
			return fmt.Errorf("source.%s.driver must be postgres or sqlite, got %q", name, src.Driver)
		}
		if src.DSN == "" {
			return fmt.Errorf("source.%s.dsn is required", name)
		}
	}
	return nil
}

// Language returns the collation locale
func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.View.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("view.locale %q: %w", c.View.Locale, err)
	}
	return tag, nil
}

// GetSource returns a named source
func (c *Config) GetSource(name string) (SourceConfig, bool) {
	src, ok := c.Sources[name]
	return src, ok
}

// SetSource adds or updates a named source
func (c *Config) SetSource(name string, src SourceConfig) {
	if c.Sources == nil {
		c.Sources = make(map[string]SourceConfig)
	}
	c.Sources[name] = src
}

// StepPageSize returns the page size step entries away from current in
// PageSizes, wrapping around. A current size that is not in the list
// steps from the first entry.
func (v ViewConfig) StepPageSize(current, step int) int {
	if len(v.PageSizes) == 0 {
		return current
	}
	pos := -1
	for i, size := range v.PageSizes {
		if size == current {
			pos = i
			break
		}
	}
	if pos < 0 {
		return v.PageSizes[0]
	}
	n := len(v.PageSizes)
	return v.PageSizes[((pos+step)%n+n)%n]
}
