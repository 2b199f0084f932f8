package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/javiermolinar/coursegrid/internal/schedule"
)

func TestAssignColors_FirstSeenOrder(t *testing.T) {
	records := []schedule.MeetingRecord{
		rec("A", "9:00AM - 9:50AM", "M"),
		rec("B", "9:00AM - 9:50AM", "T"),
		rec("A", "1:00PM - 2:50PM", "R"),
		rec("C", "9:00AM - 9:50AM", "W"),
	}
	colors := AssignColors(records)
	pal := Palette()

	want := map[string]Color{"A": pal[0], "B": pal[1], "C": pal[2]}
	if len(colors) != len(want) {
		t.Fatalf("expected %d colors, got %d", len(want), len(colors))
	}
	for crn, c := range want {
		if colors[crn] != c {
			t.Errorf("color(%s) = %v, want %v", crn, colors[crn], c)
		}
	}
}

func TestAssignColors_WrapsAfterPalette(t *testing.T) {
	var records []schedule.MeetingRecord
	for i := 0; i < PaletteSize+1; i++ {
		records = append(records, rec(fmt.Sprintf("%05d", i), "9:00AM - 9:50AM", "M"))
	}
	colors := AssignColors(records)

	if colors["00015"] != colors["00000"] {
		t.Errorf("16th CRN got %v, want %v", colors["00015"], colors["00000"])
	}
	if colors["00014"] == colors["00000"] {
		t.Errorf("15th CRN should not collide with the first")
	}
}

func TestAssignColors_Deterministic(t *testing.T) {
	records := []schedule.MeetingRecord{
		rec("3", "9:00AM - 9:50AM", "M"),
		rec("1", "9:00AM - 9:50AM", "T"),
		rec("2", "9:00AM - 9:50AM", "W"),
	}
	first := AssignColors(records)
	for i := 0; i < 5; i++ {
		again := AssignColors(records)
		for crn, c := range first {
			if again[crn] != c {
				t.Fatalf("run %d: color(%s) = %v, want %v", i, crn, again[crn], c)
			}
		}
	}
}

func TestPalette_IsACopy(t *testing.T) {
	p := Palette()
	if len(p) != 15 {
		t.Fatalf("expected 15 palette entries, got %d", len(p))
	}
	p[0] = Color{Name: "black", Hex: "#000000"}
	if Palette()[0].Name != "red" {
		t.Fatalf("palette was mutated through the copy")
	}
}

func TestColorRGB(t *testing.T) {
	got := Color{Hex: "#FF8000"}.RGB()
	want := [3]float64{1, 128.0 / 255, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("channel %d = %f, want %f", i, got[i], want[i])
		}
	}
	if (Color{Hex: "bogus"}).RGB() != [3]float64{} {
		t.Errorf("expected zero channels for invalid hex")
	}
}

func TestColorSink_ReceivesFreshMapEachPass(t *testing.T) {
	var received []ColorMap
	e := New(WithColorSink(func(m ColorMap) { received = append(received, m) }))
	records := []schedule.MeetingRecord{rec("1", "9:00AM - 9:50AM", "M")}

	e.Layout(&schedule.Schedule{Classes: records})
	for range e.Events(records) {
	}

	if len(received) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(received))
	}
	received[0]["1"] = Color{Name: "mutated"}
	if received[1]["1"].Name != "red" {
		t.Errorf("sink maps should be independent, got %v", received[1]["1"])
	}
}

func TestColorSink_EmptySchedule(t *testing.T) {
	calls := 0
	var last ColorMap
	e := New(WithColorSink(func(m ColorMap) {
		calls++
		last = m
	}))

	e.Layout(&schedule.Schedule{Classes: []schedule.MeetingRecord{rec("1", "9:00AM - 9:50AM", "M")}})
	e.Layout(&schedule.Schedule{})

	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if len(last) != 0 {
		t.Errorf("expected the previous assignment to be replaced, got %v", last)
	}
}
