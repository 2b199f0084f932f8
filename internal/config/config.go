// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/coursegrid/internal/dateutil"
	"github.com/javiermolinar/coursegrid/internal/logging"
	"github.com/javiermolinar/coursegrid/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	UI      UIConfig      `toml:"ui"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Export  ExportConfig  `toml:"export"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// StorageConfig holds schedule history settings.
type StorageConfig struct {
	DBPath       string `toml:"db_path"`
	HistoryLimit int    `toml:"history_limit"` // 0 keeps everything
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console", "json"
}

// ExportConfig holds calendar export settings.
type ExportConfig struct {
	TermStart string `toml:"term_start"` // YYYY-MM-DD (optional)
	TermEnd   string `toml:"term_end"`   // YYYY-MM-DD (optional)
	Timezone  string `toml:"timezone"`   // IANA name, e.g. "America/New_York"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme: "mocha",
		},
		Storage: StorageConfig{
			DBPath:       defaultDBPath(),
			HistoryLimit: 50,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Export: ExportConfig{
			Timezone: "Local",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "coursegrid.db"
	}
	return filepath.Join(home, ".local", "share", "coursegrid", "history.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "coursegrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COURSEGRID_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	if v := os.Getenv("COURSEGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("COURSEGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("COURSEGRID_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if v := os.Getenv("COURSEGRID_TERM_START"); v != "" {
		cfg.Export.TermStart = v
	}
	if v := os.Getenv("COURSEGRID_TERM_END"); v != "" {
		cfg.Export.TermEnd = v
	}
	if v := os.Getenv("COURSEGRID_TIMEZONE"); v != "" {
		cfg.Export.Timezone = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Storage.HistoryLimit < 0 {
		return errors.New("history_limit must not be negative")
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	hasStart := c.Export.TermStart != ""
	hasEnd := c.Export.TermEnd != ""
	if hasStart != hasEnd {
		return errors.New("both term_start and term_end must be set, or neither")
	}
	if hasStart {
		if _, err := dateutil.NewDateRange(c.Export.TermStart, c.Export.TermEnd); err != nil {
			return fmt.Errorf("term: %w", err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// HasTerm returns true if explicit term dates are configured.
func (c *Config) HasTerm() bool {
	return c.Export.TermStart != "" && c.Export.TermEnd != ""
}

// Location resolves the export timezone. Empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Export.Timezone
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
