package tui

import (
	"cmp"
	"slices"
	"strings"

	"github.com/javiermolinar/coursegrid/internal/layout"
)

// focusOrder lists event IDs by day, then start slot. Events starting in the
// same slot keep layout order.
func focusOrder(g layout.Grid) []string {
	events := slices.Clone(g.Events)
	slices.SortStableFunc(events, func(a, b layout.PositionedEvent) int {
		if c := cmp.Compare(a.Day, b.Day); c != 0 {
			return c
		}
		return cmp.Compare(a.StartSlot, b.StartSlot)
	})
	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.ID()
	}
	return ids
}

// current returns the focused event and its index in the focus order.
func (m Model) current() (layout.PositionedEvent, int, bool) {
	ev, ok := m.hover.Resolve(m.grid)
	if !ok {
		return layout.PositionedEvent{}, -1, false
	}
	return ev, slices.Index(m.order, ev.ID()), true
}

// step moves delta places through the focus order, wrapping around. From
// Idle it starts at the first (or last) event.
func (m Model) step(delta int) string {
	n := len(m.order)
	if n == 0 {
		return ""
	}
	_, i, ok := m.current()
	if !ok || i < 0 {
		if delta < 0 {
			return m.order[n-1]
		}
		return m.order[0]
	}
	return m.order[((i+delta)%n+n)%n]
}

// within moves to the next event later (delta > 0) or earlier in the same
// day column. It returns "" at the end of the column.
func (m Model) within(delta int) string {
	cur, _, ok := m.current()
	if !ok {
		return m.step(delta)
	}
	day := m.grid.EventsOn(cur.Day)
	slices.SortStableFunc(day, func(a, b layout.PositionedEvent) int {
		return cmp.Compare(a.StartSlot, b.StartSlot)
	})
	i := slices.IndexFunc(day, func(ev layout.PositionedEvent) bool { return ev.ID() == cur.ID() })
	j := i + delta
	if i < 0 || j < 0 || j >= len(day) {
		return ""
	}
	return day[j].ID()
}

// across moves to the nearest day column with events in the given
// direction, picking the event whose start is closest to the focused one.
func (m Model) across(delta int) string {
	cur, _, ok := m.current()
	if !ok {
		return m.step(delta)
	}
	for d := int(cur.Day) + delta; d >= 0 && d < layout.NumDays; d += delta {
		events := m.grid.EventsOn(layout.Weekday(d))
		if len(events) == 0 {
			continue
		}
		best := events[0]
		for _, ev := range events[1:] {
			if dist(ev.StartSlot, cur.StartSlot) < dist(best.StartSlot, cur.StartSlot) {
				best = ev
			}
		}
		return best.ID()
	}
	return ""
}

func dist(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// detailText formats the focused event for the clipboard.
func detailText(ev layout.PositionedEvent) string {
	var b strings.Builder
	title := ev.Record.CourseNumber
	if title == "" {
		title = "CRN " + ev.Record.CRN
	}
	b.WriteString(title)
	for _, l := range layout.Detail(ev) {
		b.WriteString("\n")
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
	}
	return b.String()
}

func cutLine(s string) (first, rest string, ok bool) {
	return strings.Cut(s, "\n")
}
