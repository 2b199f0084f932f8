// Package schedule defines the finished schedule snapshots rendered by coursegrid.
package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrNoClasses     = errors.New("schedule has no classes")
	ErrEmptyDocument = errors.New("schedule document is empty")
	ErrInvalidID     = errors.New("schedule id must be a string or a number")
)

// MeetingRecord is one raw meeting of a course section as produced by the
// schedule generator. Lecture and lab meetings of a section share a CRN.
type MeetingRecord struct {
	CRN           string `json:"crn" yaml:"crn"`
	Time          string `json:"time" yaml:"time"` // "9:00AM - 9:50AM"
	Days          string `json:"days" yaml:"days"` // letters from "MTWRF"
	CourseNumber  string `json:"courseNumber" yaml:"courseNumber"`
	CourseName    string `json:"courseName" yaml:"courseName"`
	ProfessorName string `json:"professorName" yaml:"professorName"`
	Location      string `json:"location" yaml:"location"`
	IsLab         bool   `json:"isLab" yaml:"isLab"`
}

// Kind returns "Lab" or "Lecture".
func (r MeetingRecord) Kind() string {
	if r.IsLab {
		return "Lab"
	}
	return "Lecture"
}

// ID identifies a schedule. Generators emit either strings or numbers; the
// textual form is kept in both cases.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalYAML accepts any scalar.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidID, value.Line)
	}
	*id = ID(value.Value)
	return nil
}

func (id ID) numeric() bool {
	if id == "" {
		return false
	}
	if _, err := strconv.ParseFloat(string(id), 64); err != nil {
		return false
	}
	return json.Valid([]byte(id))
}

// Schedule is one finished schedule snapshot.
type Schedule struct {
	ID      ID              `json:"id" yaml:"id"`
	Score   *float64        `json:"score,omitempty" yaml:"score,omitempty"`
	Classes []MeetingRecord `json:"classes" yaml:"classes"`
}

// Validate reports ErrNoClasses for a nil or empty schedule.
func (s *Schedule) Validate() error {
	if s == nil || len(s.Classes) == 0 {
		return ErrNoClasses
	}
	return nil
}

// CRNs returns the distinct CRNs in first-seen order.
func (s *Schedule) CRNs() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Classes))
	var out []string
	for _, c := range s.Classes {
		if seen[c.CRN] {
			continue
		}
		seen[c.CRN] = true
		out = append(out, c.CRN)
	}
	return out
}

// Title returns a short label for lists and headers.
func (s *Schedule) Title() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Schedule")
	if s.ID != "" {
		b.WriteString(" #")
		b.WriteString(string(s.ID))
	}
	if s.Score != nil {
		fmt.Fprintf(&b, " (score %s)", FormatScore(*s.Score))
	}
	return b.String()
}

// FormatScore trims a trailing ".0" from whole scores.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// Set holds the alternative schedules returned for one request.
type Set []Schedule

// Ranked returns a copy sorted by score, highest first. Unscored schedules
// keep their relative order after the scored ones.
func (s Set) Ranked() Set {
	out := slices.Clone(s)
	slices.SortStableFunc(out, func(a, b Schedule) int {
		switch {
		case a.Score == nil && b.Score == nil:
			return 0
		case a.Score == nil:
			return 1
		case b.Score == nil:
			return -1
		case *a.Score > *b.Score:
			return -1
		case *a.Score < *b.Score:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Tier buckets a score for display.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierLow       Tier = "low"
)

// ScoreTier maps a schedule score to its display tier.
func ScoreTier(score float64) Tier {
	switch {
	case score >= 1200:
		return TierExcellent
	case score >= 1100:
		return TierGood
	case score >= 1000:
		return TierFair
	default:
		return TierLow
	}
}
