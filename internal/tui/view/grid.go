package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/coursegrid/internal/layout"
)

const (
	// TimeColumnWidth fits "12:00 PM" plus a gap.
	TimeColumnWidth = 9
	// MinDayWidth is the narrowest usable day column.
	MinDayWidth = 8
	// HeaderLines is the number of lines above slot 0.
	HeaderLines = 1
)

// Geometry maps grid columns to terminal cells.
type Geometry struct {
	DayWidth int
}

// NewGeometry fits five day columns into totalWidth cells.
func NewGeometry(totalWidth int) Geometry {
	return Geometry{DayWidth: max(MinDayWidth, (totalWidth-TimeColumnWidth)/layout.NumDays)}
}

// DaysWidth is the width of the five day columns.
func (g Geometry) DaysWidth() int {
	return g.DayWidth * layout.NumDays
}

// Width is the full rendered width.
func (g Geometry) Width() int {
	return TimeColumnWidth + g.DaysWidth()
}

// DayLeft returns the first cell of a day column.
func (g Geometry) DayLeft(d layout.Weekday) int {
	return TimeColumnWidth + int(d)*g.DayWidth
}

// CellAt maps a column and a slot row to a day column. Columns in the time
// labels or past the last day report false.
func (g Geometry) CellAt(x, slot int) (layout.Weekday, bool) {
	if x < TimeColumnWidth || x >= g.Width() || slot < 0 || slot >= layout.TotalSlots {
		return 0, false
	}
	return layout.Weekday((x - TimeColumnWidth) / g.DayWidth), true
}

// Height is the number of lines RenderGrid produces.
func (g Geometry) Height() int {
	return HeaderLines + layout.TotalSlots
}

// GridOptions controls RenderGrid.
type GridOptions struct {
	Geometry Geometry
	Focus    string // PositionedEvent.ID of the focused event
}

func (o GridOptions) geometry() Geometry {
	if o.Geometry.DayWidth == 0 {
		return NewGeometry(0)
	}
	return o.Geometry
}

// RenderGrid draws the week as one line per slot: a time label column and
// five day columns. Event blocks use their CRN color with a readable text
// color. When two events cover the same cell the earlier one wins.
func RenderGrid(g layout.Grid, styles Styles, opts GridOptions) string {
	geo := opts.geometry()

	var cells [layout.NumDays][layout.TotalSlots]*layout.PositionedEvent
	for i := range g.Events {
		ev := &g.Events[i]
		for s := ev.StartSlot; s < ev.EndSlot() && s < layout.TotalSlots; s++ {
			if s >= 0 && cells[ev.Day][s] == nil {
				cells[ev.Day][s] = ev
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", TimeColumnWidth))
	for _, d := range layout.Weekdays {
		b.WriteString(styles.Header.Render(center(d.String(), geo.DayWidth)))
	}

	for slot := 0; slot < layout.TotalSlots; slot++ {
		b.WriteByte('\n')
		label := ""
		if slot%layout.SlotsPerHour == 0 {
			label = layout.SlotLabel(slot)
		}
		b.WriteString(styles.TimeLabel.Render(Fit(label, TimeColumnWidth)))

		for _, d := range layout.Weekdays {
			ev := cells[d][slot]
			if ev == nil {
				b.WriteString(emptyCell(slot, geo.DayWidth, styles))
				continue
			}
			b.WriteString(eventCell(*ev, slot, geo.DayWidth, ev.ID() == opts.Focus, styles))
		}
	}

	return b.String()
}

func emptyCell(slot, width int, styles Styles) string {
	if slot%layout.SlotsPerHour == 0 {
		return styles.HourLine.Render(strings.Repeat("┄", width-1)) + " "
	}
	return strings.Repeat(" ", width)
}

func eventCell(ev layout.PositionedEvent, slot, width int, focused bool, styles Styles) string {
	p := styles.Palette
	bg := lipgloss.Color(ev.Color.Hex)
	style := styles.Event
	if focused {
		bg = p.FocusShade(ev.Color.Hex)
		style = styles.Focused
	}
	style = style.Background(bg).Foreground(p.TextOn(ev.Color.Hex))

	marker := " "
	if focused {
		marker = "▌"
	}
	text := eventLine(ev, slot-ev.StartSlot)
	return style.Render(marker+Fit(text, width-2)) + " "
}

// eventLine returns the text shown on the n-th line of an event block.
func eventLine(ev layout.PositionedEvent, n int) string {
	r := ev.Record
	switch n {
	case 0:
		if r.CourseNumber != "" {
			return r.CourseNumber
		}
		return "CRN " + r.CRN
	case 1:
		if r.IsLab {
			return "Lab"
		}
		return r.CourseName
	case 2:
		return r.Location
	default:
		return ""
	}
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return Fit(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
