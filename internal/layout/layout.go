// Package layout turns a finished schedule into weekly time-grid geometry.
//
// The grid starts at 07:00, spans 14 hours in 15-minute slots (56 rows) and
// has one column per weekday, Monday through Friday. Every call recomputes
// grouping, colors and positions from the records it is given; an Engine
// holds no state between calls and is safe for concurrent use.
package layout

import (
	"iter"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/coursegrid/internal/schedule"
)

const (
	// OriginHour is the wall-clock hour of slot 0.
	OriginHour = 7
	// GridHours is the number of hours displayed.
	GridHours = 14
	// SlotMinutes is the duration of one slot.
	SlotMinutes = 15
	// SlotsPerHour is 60 / SlotMinutes.
	SlotsPerHour = 4
	// TotalSlots is GridHours * SlotsPerHour.
	TotalSlots = GridHours * SlotsPerHour
	// NumDays is the number of weekday columns.
	NumDays = 5
)

// Engine runs the layout pipeline.
type Engine struct {
	log  zerolog.Logger
	sink func(ColorMap)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l.With().Str("component", "layout").Logger()
	}
}

// WithColorSink registers a callback that receives the color assignment of
// every computation. Each call gets a freshly built map.
func WithColorSink(fn func(ColorMap)) Option {
	return func(e *Engine) {
		e.sink = fn
	}
}

// New creates an Engine. Without WithLogger diagnostics are discarded.
func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grid is an eager layout result.
type Grid struct {
	Events []PositionedEvent
	Colors ColorMap
}

// Empty reports whether no event landed on the grid.
func (g Grid) Empty() bool {
	return len(g.Events) == 0
}

// EventsOn returns the events placed in the given day column.
func (g Grid) EventsOn(day Weekday) []PositionedEvent {
	var out []PositionedEvent
	for _, ev := range g.Events {
		if ev.Day == day {
			out = append(out, ev)
		}
	}
	return out
}

// Find returns the event with the given ID.
func (g Grid) Find(id string) (PositionedEvent, bool) {
	for _, ev := range g.Events {
		if ev.ID() == id {
			return ev, true
		}
	}
	return PositionedEvent{}, false
}

// At returns the event drawn in a day column at slot. When events overlap
// the first one in layout order wins.
func (g Grid) At(day Weekday, slot int) (PositionedEvent, bool) {
	for _, ev := range g.Events {
		if ev.Day == day && ev.Covers(slot) {
			return ev, true
		}
	}
	return PositionedEvent{}, false
}

// Events returns the positioned events for the given records. The sequence
// is lazy and restartable: each range over it recomputes the whole layout
// and notifies the color sink again.
func (e *Engine) Events(records []schedule.MeetingRecord) iter.Seq[PositionedEvent] {
	return func(yield func(PositionedEvent) bool) {
		colors := e.assign(records)
		for _, g := range GroupEvents(records) {
			if !e.expandGroup(g, colors, yield) {
				return
			}
		}
	}
}

// Layout computes the full grid for a schedule. A nil schedule yields an
// empty grid.
func (e *Engine) Layout(s *schedule.Schedule) Grid {
	var records []schedule.MeetingRecord
	if s != nil {
		records = s.Classes
	}
	colors := e.assign(records)
	return Grid{
		Events: e.Expand(GroupEvents(records), colors),
		Colors: colors,
	}
}

func (e *Engine) assign(records []schedule.MeetingRecord) ColorMap {
	colors := AssignColors(records)
	if e.sink != nil {
		e.sink(colors.Clone())
	}
	return colors
}
