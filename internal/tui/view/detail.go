package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/coursegrid/internal/layout"
)

// DetailValueWidth caps the value column of the detail box.
const DetailValueWidth = 28

// RenderDetail builds the bordered detail box for an event.
func RenderDetail(ev layout.PositionedEvent, styles Styles) string {
	lines := layout.Detail(ev)

	labelWidth := 0
	for _, l := range lines {
		labelWidth = max(labelWidth, lipgloss.Width(l.Label))
	}

	title := ev.Record.CourseNumber
	if title == "" {
		title = "CRN " + ev.Record.CRN
	}

	rows := make([]string, 0, len(lines)+2)
	rows = append(rows, styles.OverlayTitle.Render(Fit(title, labelWidth+1+DetailValueWidth)), "")
	for _, l := range lines {
		rows = append(rows,
			styles.OverlayLabel.Render(Fit(l.Label, labelWidth))+
				styles.OverlayValue.Render(" "+Fit(l.Value, DetailValueWidth)))
	}

	return styles.Overlay.Render(strings.Join(rows, "\n"))
}

// OverlayOrigin returns the line and cell where the detail box for ev goes.
// The box sits beside the event's day column, flipping to the left on
// Friday, and is pulled back inside the grid when it would overflow.
func OverlayOrigin(ev layout.PositionedEvent, geo Geometry, box string) (top, left int) {
	placement := layout.PlaceOverlay(ev)
	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)

	top = HeaderLines + placement.Row()
	if maxTop := geo.Height() - boxH; top > maxTop {
		top = max(maxTop, 0)
	}
	left = TimeColumnWidth + placement.Columns(geo.DaysWidth(), boxW)
	return top, left
}

// RenderWithDetail renders the grid and, when focus names an event, splices
// its detail box beside it.
func RenderWithDetail(g layout.Grid, styles Styles, opts GridOptions) string {
	base := RenderGrid(g, styles, opts)
	ev, ok := g.Find(opts.Focus)
	if !ok {
		return base
	}
	box := RenderDetail(ev, styles)
	top, left := OverlayOrigin(ev, opts.geometry(), box)
	return SpliceAt(base, box, top, left, styles.Palette.Overlay.Bg)
}
