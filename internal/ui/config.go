package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/coursegrid/internal/config"
	"github.com/javiermolinar/coursegrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  coursegrid config
  coursegrid config --config ./coursegrid.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runConfigInteractive(in io.Reader, out io.Writer) error {
	configPath := a.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg := a.config

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Storage.HistoryLimit = promptInt(reader, out, "History limit (0 keeps everything)", cfg.Storage.HistoryLimit)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)
	cfg.Log.Format = promptValue(reader, out, "Log format (console, json)", cfg.Log.Format)
	cfg.Export.TermStart = promptValue(reader, out, "Term start YYYY-MM-DD (- to clear)", cfg.Export.TermStart)
	cfg.Export.TermEnd = promptValue(reader, out, "Term end YYYY-MM-DD (- to clear)", cfg.Export.TermEnd)
	cfg.Export.Timezone = promptValue(reader, out, "Time zone", cfg.Export.Timezone)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, formatOK("\nConfiguration saved!"))
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, formatHeader("Current configuration:"))
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[ui]")
	fmt.Fprintf(w, "  theme          = %s\n", cfg.UI.Theme)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  history_limit  = %d\n", cfg.Storage.HistoryLimit)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level          = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  format         = %s\n", cfg.Log.Format)
	fmt.Fprintln(w, "\n[export]")
	if cfg.HasTerm() {
		fmt.Fprintf(w, "  term_start     = %s\n", cfg.Export.TermStart)
		fmt.Fprintf(w, "  term_end       = %s\n", cfg.Export.TermEnd)
	}
	fmt.Fprintf(w, "  timezone       = %s\n", cfg.Export.Timezone)
}

func promptYesNo(reader *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// promptValue keeps current on empty input and clears it on "-".
func promptValue(reader *bufio.Reader, w io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(w, "  %s: ", label)
	} else {
		fmt.Fprintf(w, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	switch input {
	case "":
		return current
	case "-":
		return ""
	}
	return input
}

func promptInt(reader *bufio.Reader, w io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, w, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(w, "  Invalid number %q\n", value)
		if value == "" {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, w io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, w, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(w, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
