// Package config loads the browser's startup options. The file is only ever
// read; nothing is written back.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"fls/internal/mode"
)

// Config represents the configuration file.
type Config struct {
	DryRun      bool     `yaml:"dry_run"`      // simulate deletes
	Concurrency int      `yaml:"concurrency"`  // parallel deletes
	Excludes    []string `yaml:"excludes"`     // glob patterns hidden from listings
	Watch       bool     `yaml:"watch"`        // re-list when the directory changes
	GlobalDepth int      `yaml:"global_depth"` // depth carried by global search mode
	Theme       Theme    `yaml:"theme"`

	// Keys overrides Normal-mode bindings by name, e.g. down: [j, down].
	Keys map[string][]string `yaml:"keys"`
}

// Theme holds lipgloss color strings (ANSI numbers or #rrggbb).
type Theme struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Concurrency: runtime.NumCPU(),
		Watch:       true,
		GlobalDepth: mode.DefaultGlobalDepth,
		Theme: Theme{
			Primary:   "99",
			Secondary: "42",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/fls/config.yaml, falling back to
// ~/.config/fls/config.yaml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fls", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fls", "config.yaml"), nil
}

// Load reads the file at the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.GlobalDepth < 1 {
		return fmt.Errorf("global_depth must be at least 1, got %d", c.GlobalDepth)
	}
	for _, pat := range c.Excludes {
		if _, err := glob.Compile(pat, filepath.Separator); err != nil {
			return fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
	}
	if _, err := c.KeyMap(); err != nil {
		return err
	}
	return nil
}

// KeyMap builds the Normal-mode key bindings.
func (c *Config) KeyMap() (mode.KeyMap, error) {
	return mode.NewKeyMap(c.Keys, c.GlobalDepth)
}
