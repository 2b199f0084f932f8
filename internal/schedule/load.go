package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a schedule document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Unknown
// extensions are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document covers the object shapes a generator may return: a bare
// schedule, {"schedule": {...}} or {"schedules": [...]}.
type document struct {
	Schedules []Schedule      `json:"schedules" yaml:"schedules"`
	Wrapped   *Schedule       `json:"schedule" yaml:"schedule"`
	ID        ID              `json:"id" yaml:"id"`
	Score     *float64        `json:"score" yaml:"score"`
	Classes   []MeetingRecord `json:"classes" yaml:"classes"`
}

func (d document) set() Set {
	switch {
	case len(d.Schedules) > 0:
		return Set(d.Schedules)
	case d.Wrapped != nil:
		return Set{*d.Wrapped}
	default:
		return Set{{ID: d.ID, Score: d.Score, Classes: d.Classes}}
	}
}

// Load reads a schedule document from disk.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer func() { _ = f.Close() }()

	set, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return set, nil
}

// Decode parses a schedule document. A top-level list is read as several
// schedules.
func Decode(r io.Reader, format Format) (Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	unmarshal := json.Unmarshal
	if format == FormatYAML {
		unmarshal = yaml.Unmarshal
	}

	var list []Schedule
	if err := unmarshal(data, &list); err == nil {
		return Set(list), nil
	}

	var doc document
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s schedule: %w", format, err)
	}
	return doc.set(), nil
}

// Encode writes a single schedule as indented JSON.
func Encode(w io.Writer, s *Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return nil
}
