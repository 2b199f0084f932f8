package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func score(v float64) *float64 { return &v }

func TestDecode_JSONShapes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantN   int
		wantID  ID
		classes int
	}{
		{
			name:    "bare schedule with numeric id",
			input:   `{"id": 42, "score": 1150, "classes": [{"crn": "10001", "time": "9:00AM - 9:50AM", "days": "MWF"}]}`,
			wantN:   1,
			wantID:  "42",
			classes: 1,
		},
		{
			name:    "bare schedule with string id",
			input:   `{"id": "abc", "classes": []}`,
			wantN:   1,
			wantID:  "abc",
			classes: 0,
		},
		{
			name:    "wrapped schedule",
			input:   `{"schedule": {"id": 7, "classes": [{"crn": "1"}, {"crn": "2"}]}}`,
			wantN:   1,
			wantID:  "7",
			classes: 2,
		},
		{
			name:    "schedules list object",
			input:   `{"schedules": [{"id": 1, "classes": []}, {"id": 2, "classes": []}]}`,
			wantN:   2,
			wantID:  "1",
			classes: 0,
		},
		{
			name:    "top level array",
			input:   `[{"id": "x", "classes": [{"crn": "1"}]}, {"id": "y"}]`,
			wantN:   2,
			wantID:  "x",
			classes: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Decode(strings.NewReader(tt.input), FormatJSON)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if len(set) != tt.wantN {
				t.Fatalf("expected %d schedules, got %d", tt.wantN, len(set))
			}
			if set[0].ID != tt.wantID {
				t.Errorf("ID = %q, want %q", set[0].ID, tt.wantID)
			}
			if len(set[0].Classes) != tt.classes {
				t.Errorf("expected %d classes, got %d", tt.classes, len(set[0].Classes))
			}
		})
	}
}

func TestDecode_YAML(t *testing.T) {
	input := `
id: 12
score: 1210.5
classes:
  - crn: "20002"
    time: 1:00PM - 1:50PM
    days: M
    courseNumber: MATH 2114
    courseName: Linear Algebra
    professorName: Smith
    location: McBryde 100
  - crn: "20002"
    time: 1:00PM - 1:50PM
    days: W
    isLab: true
`
	set, err := Decode(strings.NewReader(input), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(set))
	}
	s := set[0]
	if s.ID != "12" {
		t.Errorf("ID = %q, want 12", s.ID)
	}
	if s.Score == nil || *s.Score != 1210.5 {
		t.Errorf("Score = %v, want 1210.5", s.Score)
	}
	if len(s.Classes) != 2 || s.Classes[0].CourseName != "Linear Algebra" || !s.Classes[1].IsLab {
		t.Errorf("unexpected classes: %+v", s.Classes)
	}
}

func TestDecode_Errors(t *testing.T) {
	if _, err := Decode(strings.NewReader("  \n"), FormatJSON); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := Decode(strings.NewReader("{not json"), FormatJSON); err == nil {
		t.Errorf("expected a parse error")
	}
	if _, err := Decode(strings.NewReader(`{"id": {"nested": true}}`), FormatJSON); err == nil {
		t.Errorf("expected an id error")
	}
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "s.yml")
	if err := os.WriteFile(yamlPath, []byte("id: a\nclasses:\n  - crn: \"1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if set[0].ID != "a" || len(set[0].Classes) != 1 {
		t.Errorf("unexpected schedule: %+v", set[0])
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestLoad_Fixture(t *testing.T) {
	set, err := Load(filepath.Join("..", "..", "testdata", "schedules.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(set) < 2 {
		t.Fatalf("expected several schedules in the fixture, got %d", len(set))
	}
	for _, s := range set {
		if err := s.Validate(); err != nil {
			t.Errorf("schedule %s: %v", s.ID, err)
		}
	}
}

func TestIDMarshal(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{id: "42", want: `42`},
		{id: "4.5", want: `4.5`},
		{id: "abc", want: `"abc"`},
		{id: "007", want: `"007"`},
		{id: "Inf", want: `"Inf"`},
		{id: "", want: `""`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.id)
		if err != nil {
			t.Fatalf("Marshal(%q) error: %v", tt.id, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%q) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	s := &Schedule{ID: "9", Classes: []MeetingRecord{{CRN: "1", Time: "9:00AM - 9:50AM", Days: "M"}}}
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	set, err := Decode(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if set[0].ID != "9" || set[0].Classes[0].Time != "9:00AM - 9:50AM" {
		t.Errorf("unexpected round trip: %+v", set[0])
	}
}

func TestRanked(t *testing.T) {
	set := Set{
		{ID: "none-1"},
		{ID: "low", Score: score(900)},
		{ID: "high", Score: score(1250)},
		{ID: "none-2"},
		{ID: "mid", Score: score(1100)},
	}
	ranked := set.Ranked()

	var got []string
	for _, s := range ranked {
		got = append(got, string(s.ID))
	}
	want := "high,mid,low,none-1,none-2"
	if strings.Join(got, ",") != want {
		t.Errorf("Ranked() = %v, want %s", got, want)
	}
	if set[0].ID != "none-1" {
		t.Errorf("Ranked must not reorder the receiver")
	}
}

func TestScoreTier(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{score: 1300, want: TierExcellent},
		{score: 1200, want: TierExcellent},
		{score: 1199.9, want: TierGood},
		{score: 1100, want: TierGood},
		{score: 1000, want: TierFair},
		{score: 999, want: TierLow},
		{score: 0, want: TierLow},
	}
	for _, tt := range tests {
		if got := ScoreTier(tt.score); got != tt.want {
			t.Errorf("ScoreTier(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScheduleHelpers(t *testing.T) {
	var nilSchedule *Schedule
	if !errors.Is(nilSchedule.Validate(), ErrNoClasses) {
		t.Errorf("nil schedule should not validate")
	}

	s := &Schedule{ID: "3", Score: score(1100), Classes: []MeetingRecord{{CRN: "b"}, {CRN: "a"}, {CRN: "b"}}}
	if got := strings.Join(s.CRNs(), ","); got != "b,a" {
		t.Errorf("CRNs() = %s, want b,a", got)
	}
	if got := s.Title(); got != "Schedule #3 (score 1100)" {
		t.Errorf("Title() = %q", got)
	}
	if (MeetingRecord{IsLab: true}).Kind() != "Lab" || (MeetingRecord{}).Kind() != "Lecture" {
		t.Errorf("unexpected Kind()")
	}
}
