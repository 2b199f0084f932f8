// Package view renders layout results for the terminal.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/coursegrid/internal/tui/theme"
)

// Styles groups the lipgloss styles shared by the grid, overlay and footer.
type Styles struct {
	Palette *theme.Palette

	Header    lipgloss.Style
	TimeLabel lipgloss.Style
	Empty     lipgloss.Style
	HourLine  lipgloss.Style
	Event     lipgloss.Style
	Focused   lipgloss.Style

	Overlay      lipgloss.Style
	OverlayLabel lipgloss.Style
	OverlayValue lipgloss.Style
	OverlayTitle lipgloss.Style

	Title  lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
	Error  lipgloss.Style
	Border lipgloss.Style
}

// NewStyles derives the view styles from a palette. A nil palette uses the
// default theme.
func NewStyles(p *theme.Palette) Styles {
	if p == nil {
		p = theme.NewPalette(nil)
	}
	return Styles{
		Palette: p,

		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		TimeLabel: lipgloss.NewStyle().Foreground(p.FgMuted),
		Empty:     lipgloss.NewStyle(),
		HourLine:  lipgloss.NewStyle().Foreground(p.GridLine),
		Event:     lipgloss.NewStyle(),
		Focused:   lipgloss.NewStyle().Bold(true),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Overlay.Border).
			BorderBackground(p.Overlay.Bg).
			Background(p.Overlay.Bg).
			Padding(0, 1),
		OverlayLabel: lipgloss.NewStyle().Foreground(p.Overlay.Muted).Background(p.Overlay.Bg),
		OverlayValue: lipgloss.NewStyle().Foreground(p.Overlay.Text).Background(p.Overlay.Bg),
		OverlayTitle: lipgloss.NewStyle().Bold(true).Foreground(p.Overlay.Text).Background(p.Overlay.Bg),

		Title:  lipgloss.NewStyle().Bold(true).Foreground(p.TextOnAccent).Background(p.Accent).Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(p.Fg),
		Help:   lipgloss.NewStyle().Foreground(p.FgMuted),
		Error:  lipgloss.NewStyle().Foreground(p.Warning),
		Border: lipgloss.NewStyle().Foreground(p.Accent),
	}
}
