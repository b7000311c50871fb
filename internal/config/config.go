// Package config holds decker's tool configuration: presentation theme,
// rendering options, history and logging settings. The deck's own front
// matter always wins over tool config for per-deck options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all decker configuration.
type Config struct {
	// Theme selects the terminal color scheme: auto, dark or light.
	Theme string `yaml:"theme"`

	// Render configures slide rendering.
	Render RenderConfig `yaml:"render"`

	// Watch configures live reload.
	Watch WatchConfig `yaml:"watch"`

	// History configures the session history store.
	History HistoryConfig `yaml:"history"`

	// Logging configures debug logging.
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig configures slide rendering.
type RenderConfig struct {
	// Paginate turns page numbers on for decks whose front matter does
	// not say otherwise.
	Paginate bool `yaml:"paginate"`

	// MaxWidth caps the rendered slide width in columns; 0 means use
	// the full terminal width.
	MaxWidth int `yaml:"max_width"`
}

// WatchConfig configures live reload.
type WatchConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Debounce string `yaml:"debounce"`
}

// HistoryConfig configures the session history store.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`

	// DatabasePath overrides the default location under the user
	// config dir.
	DatabasePath string `yaml:"database_path"`

	// Keep is how many recent decks Recent lists by default.
	Keep int `yaml:"keep"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme: "auto",
		Render: RenderConfig{
			Paginate: false,
			MaxWidth: 100,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: "250ms",
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    10,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "decker", "config.yaml"), nil
}

// Load reads configuration from path, layering file values over
// defaults and environment overrides over both. A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides layers environment variables over the config.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DECKER_THEME"); v != "" {
		c.Theme = v
	}
	if os.Getenv("DECKER_NO_HISTORY") == "1" {
		c.History.Enabled = false
	}
	if os.Getenv("DECKER_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q (want auto, dark or light)", c.Theme)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	if c.Render.MaxWidth < 0 {
		return fmt.Errorf("render.max_width must be >= 0, got %d", c.Render.MaxWidth)
	}

	if _, err := c.WatchDebounce(); err != nil {
		return err
	}
	return nil
}

// WatchDebounce parses the debounce duration.
func (c *Config) WatchDebounce() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 250 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	return d, nil
}

// HistoryPath returns the history database path, resolving the default
// location when unset.
func (c *Config) HistoryPath() (string, error) {
	if c.History.DatabasePath != "" {
		return c.History.DatabasePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "decker", "history.db"), nil
}
