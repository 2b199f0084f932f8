package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/coursegrid/internal/tui/view"
)

// Lines scrolled per wheel notch.
const wheelLines = 3

// handleMouseMsg drives the hover state from the pointer: moving over an
// event enters it, moving anywhere else leaves. Unlike keyboard focus the
// grid is never scrolled to follow the pointer.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - wheelLines)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + wheelLines)
		return m, nil
	}
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return m, nil
	}

	id, over := m.eventAt(msg.X, msg.Y)
	prev, hovering := m.hover.Target()
	switch {
	case over && (!hovering || prev != id):
		m.hover = m.hover.Enter(id)
		m.logFocus(prev, id, "mouse")
		m.refresh()
	case !over && hovering:
		m.leave("mouse")
	}
	return m, nil
}

// eventAt returns the ID of the event drawn at a screen position.
func (m Model) eventAt(x, y int) (string, bool) {
	if m.loading || m.grid.Empty() || y < chromeLines || y >= chromeLines+m.viewport.Height {
		return "", false
	}
	slot := y - chromeLines + m.viewport.YOffset
	day, ok := view.NewGeometry(m.width).CellAt(x, slot)
	if !ok {
		return "", false
	}
	ev, ok := m.grid.At(day, slot)
	if !ok {
		return "", false
	}
	return ev.ID(), true
}
