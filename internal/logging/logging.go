// Package logging builds the zerolog loggers shared by coursegrid components.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DebugLogPath is the fixed path of the --debug log file.
const DebugLogPath = "coursegrid-debug.log"

// Options selects the logger output.
type Options struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "console" or "json"
	Output io.Writer
}

// New returns a logger writing to opts.Output, or stderr when unset.
func New(opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer
	switch strings.ToLower(opts.Format) {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
		w = out
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", opts.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel maps a level name to a zerolog level. Empty means warn.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.WarnLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.WarnLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// ValidLevel reports whether ParseLevel accepts s.
func ValidLevel(s string) bool {
	_, err := ParseLevel(s)
	return err == nil
}

// OpenDebugFile creates the debug log in the current directory and returns a
// JSON logger at debug level writing to it. The caller closes the file.
func OpenDebugFile() (zerolog.Logger, *os.File, error) {
	f, err := os.Create(DebugLogPath)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating debug log: %w", err)
	}
	l := zerolog.New(f).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	l.Debug().Str("log_file", DebugLogPath).Msg("debug start")
	return l, f, nil
}
