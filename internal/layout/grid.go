package layout

import "fmt"

const (
	// RowHeightPx is the rendered height of one slot.
	RowHeightPx = 12
	// ColumnWidthPercent is the width of one day column.
	ColumnWidthPercent = 100.0 / NumDays
)

// PositionedEvent is one rectangle of a grouped event in a day column.
type PositionedEvent struct {
	GroupedEvent
	Day       Weekday
	StartSlot int
	Duration  int // slots, at least 1
	Color     Color
	AllDays   string // every day of the group, e.g. "MWF"
}

// ID identifies the rectangle within one layout.
func (p PositionedEvent) ID() string {
	return p.Key() + "@" + p.Day.Letter()
}

// EndSlot returns the first slot after the event.
func (p PositionedEvent) EndSlot() int {
	return p.StartSlot + p.Duration
}

// Covers reports whether the event occupies slot.
func (p PositionedEvent) Covers(slot int) bool {
	return slot >= p.StartSlot && slot < p.EndSlot()
}

// Rect is the presentation geometry of an event: horizontal placement in
// percent of the grid width, vertical placement in pixels.
type Rect struct {
	LeftPercent  float64
	WidthPercent float64
	TopPx        int
	HeightPx     int
}

// Rect returns the event's geometry.
func (p PositionedEvent) Rect() Rect {
	return Rect{
		LeftPercent:  float64(p.Day) * ColumnWidthPercent,
		WidthPercent: ColumnWidthPercent,
		TopPx:        p.StartSlot * RowHeightPx,
		HeightPx:     p.Duration * RowHeightPx,
	}
}

// InGrid reports whether a slot window fits the displayed hours.
func InGrid(startSlot, duration int) bool {
	return startSlot >= 0 && startSlot+duration <= TotalSlots
}

// Expand places every grouped event in each of its day columns. Events
// falling outside the displayed hours are dropped.
func (e *Engine) Expand(events []GroupedEvent, colors ColorMap) []PositionedEvent {
	var out []PositionedEvent
	for _, g := range events {
		e.expandGroup(g, colors, func(p PositionedEvent) bool {
			out = append(out, p)
			return true
		})
	}
	return out
}

// expandGroup yields one PositionedEvent per day of g. It returns false
// when yield asked to stop.
func (e *Engine) expandGroup(g GroupedEvent, colors ColorMap, yield func(PositionedEvent) bool) bool {
	days := g.Days.Days()
	if len(days) == 0 {
		return true
	}

	startText, endText := SplitRange(g.Record.Time)
	start := e.Slot(startText)
	duration := max(1, e.Slot(endText)-start)

	if !InGrid(start, duration) {
		e.log.Debug().
			Str("crn", g.Record.CRN).
			Str("time", g.Record.Time).
			Int("start_slot", start).
			Int("duration", duration).
			Msg("event outside grid hours")
		return true
	}

	label := g.Days.Label()
	for _, d := range days {
		p := PositionedEvent{
			GroupedEvent: g,
			Day:          d,
			StartSlot:    start,
			Duration:     duration,
			Color:        colors[g.Record.CRN],
			AllDays:      label,
		}
		if !yield(p) {
			return false
		}
	}
	return true
}

// SlotLabel formats the wall-clock time of a slot, e.g. "1:15 PM".
func SlotLabel(slot int) string {
	minutes := OriginHour*60 + slot*SlotMinutes
	hour, minute := minutes/60, minutes%60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, meridiem)
}

// HourLabels returns the label of every displayed hour, "7:00 AM" to "8:00 PM".
func HourLabels() []string {
	out := make([]string, GridHours)
	for i := range out {
		out[i] = SlotLabel(i * SlotsPerHour)
	}
	return out
}
