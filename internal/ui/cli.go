// Package ui implements the coursegrid command line.
package ui

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/coursegrid/internal/config"
	"github.com/javiermolinar/coursegrid/internal/layout"
	"github.com/javiermolinar/coursegrid/internal/logging"
	"github.com/javiermolinar/coursegrid/internal/store"
	"github.com/javiermolinar/coursegrid/internal/tui"
	"github.com/javiermolinar/coursegrid/internal/tui/theme"
	"github.com/javiermolinar/coursegrid/internal/tui/view"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	history *store.SQLite
	log     zerolog.Logger
	logFile *os.File

	// Global flags
	configPath string
	debug      bool
	noColor    bool

	// Root command flags
	file      string
	historyID int64
}

// NewApp creates the CLI. A nil config is loaded from --config or the
// default path before any command runs.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, log: zerolog.Nop()}

	a.root = &cobra.Command{
		Use:   "coursegrid",
		Short: "Lay out weekly course schedules",
		Long: `coursegrid turns generated course schedules into a weekly time grid.

It places every class meeting on a Monday to Friday grid from 7:00 AM to
9:00 PM, colors sections consistently, shows meeting details on focus, and
exports schedules to iCalendar.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	pf := a.root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default ~/.config/coursegrid/config.toml)")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging to "+logging.DebugLogPath)
	pf.BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.Flags().StringVarP(&a.file, "file", "f", "", "Schedule file to open (JSON or YAML)")
	a.root.Flags().Int64Var(&a.historyID, "history", 0, "Saved schedule id to open")
	a.root.MarkFlagsMutuallyExclusive("file", "history")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.gridCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.colorsCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.historyCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coursegrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the history database and the debug log.
func (a *App) Close() error {
	var err error
	if a.history != nil {
		err = a.history.Close()
		a.history = nil
	}
	if a.logFile != nil {
		a.log.Debug().Msg("debug end")
		if cerr := a.logFile.Close(); err == nil {
			err = cerr
		}
		a.logFile = nil
	}
	return err
}

// setup loads config, applies --no-color and builds the logger.
func (a *App) setup() error {
	if a.config == nil || a.configPath != "" {
		path := a.configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	if a.noColor {
		DisableColor()
	}

	if a.debug {
		l, f, err := logging.OpenDebugFile()
		if err != nil {
			return err
		}
		a.log, a.logFile = l, f
		return nil
	}

	l, err := logging.New(logging.Options{
		Level:  a.config.Log.Level,
		Format: a.config.Log.Format,
		Output: a.root.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.log = l
	return nil
}

// openHistory opens the history database once per run.
func (a *App) openHistory() (*store.SQLite, error) {
	if a.history != nil {
		return a.history, nil
	}
	h, err := store.New(a.config.Storage.DBPath,
		store.WithLogger(a.log),
		store.WithLimit(a.config.Storage.HistoryLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	a.history = h
	return h, nil
}

func (a *App) engine(opts ...layout.Option) *layout.Engine {
	return layout.New(append([]layout.Option{layout.WithLogger(a.log)}, opts...)...)
}

func (a *App) palette() *theme.Palette {
	t, err := theme.Load(a.config.UI.Theme)
	if err != nil {
		a.log.Warn().Err(err).Str("theme", a.config.UI.Theme).Msg("falling back to default theme")
	}
	return theme.NewPalette(t)
}

func (a *App) styles() view.Styles {
	return view.NewStyles(a.palette())
}

// runTUI starts the interactive viewer.
func (a *App) runTUI() error {
	var opts []tui.ModelOption
	if a.debug {
		opts = append(opts, tui.WithLogger(a.log))
	}

	h, err := a.openHistory()
	switch {
	case err == nil:
		opts = append(opts, tui.WithHistory(h))
	case a.historyID != 0:
		return err
	default:
		a.log.Warn().Err(err).Msg("history unavailable")
	}

	switch {
	case a.historyID != 0:
		opts = append(opts, tui.WithHistoryEntry(a.historyID))
	case a.file != "":
		opts = append(opts, tui.WithFile(a.file))
	}

	return tui.Run(tui.New(a.palette(), opts...))
}
