package layout

import "math"

// OverlayGapPx separates the detail overlay from its event column.
const OverlayGapPx = 5

// Side is the direction in which the detail overlay extends.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Placement positions the detail overlay of a hovered event.
type Placement struct {
	TopPx int
	Side  Side
	// AnchorPercent is the column edge the overlay hangs from, in percent of
	// the grid width.
	AnchorPercent float64
	// GapPx is added to the anchor; negative when extending leftward.
	GapPx int
}

// PlaceOverlay aligns the overlay with the event's start and puts it right
// of the column, except in the last column where it flips to the left so it
// never passes the grid's right edge.
func PlaceOverlay(ev PositionedEvent) Placement {
	r := ev.Rect()
	if ev.Day == Weekdays[NumDays-1] {
		return Placement{
			TopPx:         r.TopPx,
			Side:          SideLeft,
			AnchorPercent: r.LeftPercent,
			GapPx:         -OverlayGapPx,
		}
	}
	return Placement{
		TopPx:         r.TopPx,
		Side:          SideRight,
		AnchorPercent: r.LeftPercent + r.WidthPercent,
		GapPx:         OverlayGapPx,
	}
}

// Columns maps the placement onto a grid gridWidth cells wide and returns
// the first cell of an overlay overlayWidth cells wide. One cell stands in
// for the pixel gap. The result stays within the grid when the overlay fits.
func (p Placement) Columns(gridWidth, overlayWidth int) int {
	anchor := int(math.Round(p.AnchorPercent / 100 * float64(gridWidth)))
	left := anchor + 1
	if p.Side == SideLeft {
		left = anchor - 1 - overlayWidth
	}
	if left+overlayWidth > gridWidth {
		left = gridWidth - overlayWidth
	}
	if left < 0 {
		left = 0
	}
	return left
}

// Row maps the placement top onto slot rows.
func (p Placement) Row() int {
	return p.TopPx / RowHeightPx
}

// HoverState is the interaction state of the detail overlay.
type HoverState int

const (
	Idle HoverState = iota
	Hovering
)

func (s HoverState) String() string {
	if s == Hovering {
		return "hovering"
	}
	return "idle"
}

// Hover tracks which event, if any, shows its detail overlay. The zero value
// is Idle.
type Hover struct {
	state  HoverState
	target string
}

// Enter moves to Hovering(id). Entering another event while hovering
// replaces the target.
func (h Hover) Enter(id string) Hover {
	return Hover{state: Hovering, target: id}
}

// Leave returns to Idle, whatever the current target.
func (h Hover) Leave() Hover {
	return Hover{}
}

// State returns the current state.
func (h Hover) State() HoverState {
	return h.state
}

// Target returns the hovered event ID.
func (h Hover) Target() (string, bool) {
	return h.target, h.state == Hovering
}

// Resolve looks the hovered event up in a grid. It reports false when idle
// or when the target is no longer on the grid.
func (h Hover) Resolve(g Grid) (PositionedEvent, bool) {
	id, ok := h.Target()
	if !ok {
		return PositionedEvent{}, false
	}
	return g.Find(id)
}

// DetailLine is one labeled row of the detail overlay.
type DetailLine struct {
	Label string
	Value string
}

// Detail returns the overlay rows for an event.
func Detail(ev PositionedEvent) []DetailLine {
	r := ev.Record
	return []DetailLine{
		{Label: "Course", Value: r.CourseName},
		{Label: "CRN", Value: r.CRN},
		{Label: "Time", Value: r.Time},
		{Label: "Days", Value: ev.AllDays},
		{Label: "Loc", Value: r.Location},
		{Label: "Prof", Value: r.ProfessorName},
		{Label: "Type", Value: r.Kind()},
	}
}
