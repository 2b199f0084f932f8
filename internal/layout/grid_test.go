package layout

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/coursegrid/internal/schedule"
)

// rec builds a meeting record with placeholder descriptive fields.
func rec(crn, timeRange, days string) schedule.MeetingRecord {
	return schedule.MeetingRecord{
		CRN:           crn,
		Time:          timeRange,
		Days:          days,
		CourseNumber:  "CS " + crn,
		CourseName:    "Course " + crn,
		ProfessorName: "Prof " + crn,
		Location:      "Room " + crn,
	}
}

func collect(e *Engine, records []schedule.MeetingRecord) []PositionedEvent {
	var out []PositionedEvent
	for ev := range e.Events(records) {
		out = append(out, ev)
	}
	return out
}

func TestEvents_SingleRecordThreeDays(t *testing.T) {
	events := collect(New(), []schedule.MeetingRecord{rec("10001", "9:00AM - 9:50AM", "MWF")})

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	wantDays := []Weekday{Monday, Wednesday, Friday}
	for i, ev := range events {
		if ev.Day != wantDays[i] {
			t.Errorf("event %d day = %v, want %v", i, ev.Day, wantDays[i])
		}
		if ev.StartSlot != 8 {
			t.Errorf("event %d start = %d, want 8", i, ev.StartSlot)
		}
		if ev.Duration != 3 {
			t.Errorf("event %d duration = %d, want 3", i, ev.Duration)
		}
		if ev.Color != events[0].Color {
			t.Errorf("event %d color = %v, want %v", i, ev.Color, events[0].Color)
		}
		if ev.AllDays != "MWF" {
			t.Errorf("event %d label = %q, want MWF", i, ev.AllDays)
		}
	}
}

func TestEvents_MergesSameKey(t *testing.T) {
	records := []schedule.MeetingRecord{
		rec("20002", "1:00PM - 1:50PM", "M"),
		rec("20002", "1:00PM - 1:50PM", "W"),
	}

	groups := GroupEvents(records)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Days.Label() != "MW" {
		t.Errorf("group days = %q, want MW", groups[0].Days.Label())
	}

	events := collect(New(), records)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.StartSlot != 24 || ev.Duration != 3 {
			t.Errorf("event %s at %d+%d, want 24+3", ev.ID(), ev.StartSlot, ev.Duration)
		}
		if ev.AllDays != "MW" {
			t.Errorf("label = %q, want MW", ev.AllDays)
		}
	}
}

func TestEvents_OutsideGridDropped(t *testing.T) {
	tests := []struct {
		name      string
		timeRange string
		want      int
	}{
		{name: "late evening", timeRange: "11:00PM - 11:50PM", want: 0},
		{name: "before origin", timeRange: "6:00AM - 6:50AM", want: 0},
		{name: "hour past twelve", timeRange: "13:00PM - 2:00PM", want: 0},
		{name: "hour zero", timeRange: "0:30AM - 1:00AM", want: 0},
		{name: "crosses grid end", timeRange: "8:30PM - 9:15PM", want: 0},
		{name: "ends exactly at grid end", timeRange: "8:00PM - 9:00PM", want: 1},
		{name: "starts at origin", timeRange: "7:00AM - 7:50AM", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := collect(New(), []schedule.MeetingRecord{rec("1", tt.timeRange, "T")})
			if len(events) != tt.want {
				t.Fatalf("expected %d events, got %d", tt.want, len(events))
			}
			for _, ev := range events {
				if ev.StartSlot < 0 || ev.EndSlot() > TotalSlots {
					t.Errorf("event %d+%d escapes the grid", ev.StartSlot, ev.Duration)
				}
			}
		})
	}
}

func TestEvents_MalformedTimeDegrades(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithLogger(zerolog.New(&buf)))

	events := collect(e, []schedule.MeetingRecord{rec("1", "garbage", "M")})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].StartSlot != 0 || events[0].Duration != 1 {
		t.Errorf("got %d+%d, want 0+1", events[0].StartSlot, events[0].Duration)
	}
	if !strings.Contains(buf.String(), "unparseable time") {
		t.Errorf("expected a diagnostic, got %q", buf.String())
	}
}

func TestEvents_ZeroLengthClampsToOneSlot(t *testing.T) {
	events := collect(New(), []schedule.MeetingRecord{
		rec("1", "10:00AM - 10:00AM", "M"),
		rec("2", "10:00AM - 9:00AM", "T"),
		rec("3", "10:00AM - 10:10AM", "W"),
	})
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Duration != 1 {
			t.Errorf("%s duration = %d, want 1", ev.Record.CRN, ev.Duration)
		}
	}
}

func TestEvents_UnknownDaysIgnored(t *testing.T) {
	events := collect(New(), []schedule.MeetingRecord{
		rec("1", "9:00AM - 9:50AM", "SU"),
		rec("2", "9:00AM - 9:50AM", "MxS"),
		rec("3", "9:00AM - 9:50AM", ""),
	})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Record.CRN != "2" || events[0].Day != Monday {
		t.Errorf("got %s on %v, want 2 on Monday", events[0].Record.CRN, events[0].Day)
	}
	if events[0].AllDays != "M" {
		t.Errorf("label = %q, want M", events[0].AllDays)
	}
}

func TestEvents_EmptyInput(t *testing.T) {
	if events := collect(New(), nil); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	grid := New().Layout(nil)
	if !grid.Empty() {
		t.Fatalf("expected empty grid")
	}
	if len(grid.Colors) != 0 {
		t.Errorf("expected no colors, got %d", len(grid.Colors))
	}
}

func TestEvents_Restartable(t *testing.T) {
	records := []schedule.MeetingRecord{
		rec("1", "9:00AM - 9:50AM", "MWF"),
		rec("2", "11:00AM - 12:15PM", "TR"),
	}
	seq := New().Events(records)

	var first, second []string
	for ev := range seq {
		first = append(first, ev.ID())
	}
	for ev := range seq {
		second = append(second, ev.ID())
	}
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Fatalf("second pass %v differs from first %v", second, first)
	}
	if len(first) != 5 {
		t.Errorf("expected 5 events, got %d", len(first))
	}
}

func TestEvents_StopsEarly(t *testing.T) {
	records := []schedule.MeetingRecord{rec("1", "9:00AM - 9:50AM", "MTWRF")}
	n := 0
	for range New().Events(records) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected to stop after 2, got %d", n)
	}
}

func TestEvents_LabelInWeekOrder(t *testing.T) {
	records := []schedule.MeetingRecord{
		rec("1", "9:00AM - 9:50AM", "F"),
		rec("1", "9:00AM - 9:50AM", "RM"),
		rec("1", "9:00AM - 9:50AM", "MF"),
	}
	events := collect(New(), records)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.AllDays != "MRF" {
			t.Errorf("label = %q, want MRF", ev.AllDays)
		}
	}
}

func TestLayout_MatchesEvents(t *testing.T) {
	s := &schedule.Schedule{Classes: []schedule.MeetingRecord{
		rec("1", "9:00AM - 9:50AM", "MWF"),
		rec("1", "2:00PM - 4:50PM", "T"),
		rec("2", "11:00AM - 12:15PM", "TR"),
	}}
	e := New()
	grid := e.Layout(s)
	events := collect(e, s.Classes)
	if len(grid.Events) != len(events) {
		t.Fatalf("Layout has %d events, Events has %d", len(grid.Events), len(events))
	}
	for i := range events {
		if grid.Events[i].ID() != events[i].ID() {
			t.Errorf("event %d: %s vs %s", i, grid.Events[i].ID(), events[i].ID())
		}
	}
	if got := len(grid.EventsOn(Tuesday)); got != 2 {
		t.Errorf("Tuesday has %d events, want 2", got)
	}
	if _, ok := grid.Find(events[0].ID()); !ok {
		t.Errorf("Find(%s) failed", events[0].ID())
	}
}

func TestLayout_LectureAndLabStayApart(t *testing.T) {
	s := &schedule.Schedule{Classes: []schedule.MeetingRecord{
		rec("30003", "10:00AM - 10:50AM", "MW"),
		rec("30003", "2:00PM - 3:50PM", "R"),
	}}
	grid := New().Layout(s)
	if len(grid.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(grid.Events))
	}
	if grid.Events[0].Color != grid.Events[2].Color {
		t.Errorf("lecture and lab of one CRN should share a color")
	}
	if grid.Events[2].AllDays != "R" {
		t.Errorf("lab label = %q, want R", grid.Events[2].AllDays)
	}
}

func TestGroupEvents_WhitespaceIsSignificant(t *testing.T) {
	groups := GroupEvents([]schedule.MeetingRecord{
		rec("1", "9:00AM - 9:50AM", "M"),
		rec("1", "9:00AM  - 9:50AM", "W"),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}

func TestGroupEvents_FirstRecordWins(t *testing.T) {
	first := rec("1", "9:00AM - 9:50AM", "M")
	second := rec("1", "9:00AM - 9:50AM", "W")
	second.Location = "Elsewhere"
	second.IsLab = true

	groups := GroupEvents([]schedule.MeetingRecord{first, second})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Record.Location != first.Location || groups[0].Record.IsLab {
		t.Errorf("descriptive fields were overwritten: %+v", groups[0].Record)
	}
}

func TestRect(t *testing.T) {
	ev := PositionedEvent{Day: Wednesday, StartSlot: 8, Duration: 3}
	got := ev.Rect()
	want := Rect{LeftPercent: 40, WidthPercent: 20, TopPx: 96, HeightPx: 36}
	if got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}

func TestHourLabels(t *testing.T) {
	labels := HourLabels()
	if len(labels) != GridHours {
		t.Fatalf("expected %d labels, got %d", GridHours, len(labels))
	}
	if labels[0] != "7:00 AM" || labels[5] != "12:00 PM" || labels[13] != "8:00 PM" {
		t.Errorf("unexpected labels %v", labels)
	}
	if got := SlotLabel(21); got != "12:15 PM" {
		t.Errorf("SlotLabel(21) = %q", got)
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		input string
		want  string
		n     int
	}{
		{input: "MWF", want: "MWF", n: 3},
		{input: "FWM", want: "MWF", n: 3},
		{input: "TR", want: "TR", n: 2},
		{input: "MMM", want: "M", n: 1},
		{input: "SSU", want: "", n: 0},
		{input: "mwf", want: "", n: 0},
		{input: "MTWRFSU", want: "MTWRF", n: 5},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			set := ParseDays(tt.input)
			if set.Label() != tt.want {
				t.Errorf("ParseDays(%q).Label() = %q, want %q", tt.input, set.Label(), tt.want)
			}
			if set.Len() != tt.n {
				t.Errorf("ParseDays(%q).Len() = %d, want %d", tt.input, set.Len(), tt.n)
			}
		})
	}
}

func TestWeekdayNames(t *testing.T) {
	for i, d := range Weekdays {
		if fmt.Sprint(d) == "" || d.Letter() != string("MTWRF"[i]) {
			t.Errorf("weekday %d: %q %q", i, d, d.Letter())
		}
	}
	if Thursday.Short() != "Thu" {
		t.Errorf("Thursday.Short() = %q", Thursday.Short())
	}
}

func TestGridAt(t *testing.T) {
	g := New().Layout(&schedule.Schedule{Classes: []schedule.MeetingRecord{
		rec("1", "9:00AM - 9:50AM", "M"),
		rec("2", "9:30AM - 10:20AM", "M"),
	}})

	tests := []struct {
		name string
		day  Weekday
		slot int
		want string
		ok   bool
	}{
		{name: "first slot", day: Monday, slot: 8, want: "1", ok: true},
		{name: "overlap keeps first", day: Monday, slot: 10, want: "1", ok: true},
		{name: "second after first ends", day: Monday, slot: 12, want: "2", ok: true},
		{name: "end is exclusive", day: Monday, slot: 14, ok: false},
		{name: "other day", day: Tuesday, slot: 8, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := g.At(tt.day, tt.slot)
			if ok != tt.ok {
				t.Fatalf("At(%v, %d) ok = %v, want %v", tt.day, tt.slot, ok, tt.ok)
			}
			if ok && ev.Record.CRN != tt.want {
				t.Errorf("At(%v, %d) = CRN %s, want %s", tt.day, tt.slot, ev.Record.CRN, tt.want)
			}
		})
	}
}
