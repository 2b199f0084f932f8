package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
	if cfg.Storage.HistoryLimit != 50 {
		t.Errorf("expected history_limit 50, got %d", cfg.Storage.HistoryLimit)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("expected log format console, got %s", cfg.Log.Format)
	}
	if cfg.HasTerm() {
		t.Errorf("expected no term by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[ui]
theme = "latte"

[storage]
db_path = "/tmp/history.db"
history_limit = 10

[log]
level = "debug"
format = "json"

[export]
term_start = "2025-08-25"
term_end = "2025-12-10"
timezone = "UTC"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.Storage.DBPath != "/tmp/history.db" {
		t.Errorf("expected db_path /tmp/history.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Storage.HistoryLimit != 10 {
		t.Errorf("expected history_limit 10, got %d", cfg.Storage.HistoryLimit)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if !cfg.HasTerm() {
		t.Errorf("expected term to be configured")
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[ui]
theme = "latte"

[storage]
db_path = "/tmp/history.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("COURSEGRID_THEME", "mocha")
	t.Setenv("COURSEGRID_LOG_LEVEL", "info")
	t.Setenv("COURSEGRID_TERM_START", "2026-01-12")
	t.Setenv("COURSEGRID_TERM_END", "2026-05-01")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha from env, got %s", cfg.UI.Theme)
	}
	if cfg.Storage.DBPath != "/tmp/history.db" {
		t.Errorf("expected db_path from file, got %s", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level info from env, got %s", cfg.Log.Level)
	}
	if cfg.Export.TermStart != "2026-01-12" || cfg.Export.TermEnd != "2026-05-01" {
		t.Errorf("unexpected term from env: %+v", cfg.Export)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.UI.Theme = "neon" },
			wantErr: "unknown theme",
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.Storage.DBPath = "" },
			wantErr: "db_path",
		},
		{
			name:    "negative history limit",
			mutate:  func(c *Config) { c.Storage.HistoryLimit = -1 },
			wantErr: "history_limit",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log format",
		},
		{
			name:    "only term start",
			mutate:  func(c *Config) { c.Export.TermStart = "2025-08-25" },
			wantErr: "term_start and term_end",
		},
		{
			name: "term end before start",
			mutate: func(c *Config) {
				c.Export.TermStart = "2025-12-10"
				c.Export.TermEnd = "2025-08-25"
			},
			wantErr: "end date",
		},
		{
			name: "malformed term date",
			mutate: func(c *Config) {
				c.Export.TermStart = "08/25/2025"
				c.Export.TermEnd = "2025-12-10"
			},
			wantErr: "YYYY-MM-DD",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Export.Timezone = "Mars/Olympus" },
			wantErr: "timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error for invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLocation_Local(t *testing.T) {
	cfg := Default()
	for _, name := range []string{"", "Local", "local"} {
		cfg.Export.Timezone = name
		loc, err := cfg.Location()
		if err != nil || loc != time.Local {
			t.Errorf("Location(%q) = %v, %v; want time.Local", name, loc, err)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/history.db", filepath.Join(home, "history.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.UI.Theme = "latte"
	cfg.Storage.HistoryLimit = 5
	cfg.Export.TermStart = "2025-08-25"
	cfg.Export.TermEnd = "2025-12-10"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", loaded.UI.Theme)
	}
	if loaded.Storage.HistoryLimit != 5 {
		t.Errorf("expected history_limit 5, got %d", loaded.Storage.HistoryLimit)
	}
	if loaded.Export.TermEnd != "2025-12-10" {
		t.Errorf("expected term_end 2025-12-10, got %s", loaded.Export.TermEnd)
	}
}
