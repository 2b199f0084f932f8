package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/coursegrid/internal/schedule"
	"github.com/javiermolinar/coursegrid/internal/tui/view"
)

// View renders the title bar, the grid and the footer.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	bg := m.styles.Palette.Bg
	bodyH := max(1, m.height-1-view.FooterHeight)

	footer := view.RenderFooter(view.FooterModel{
		InnerW:     m.width,
		StatusText: m.statusText(),
		HelpText:   m.helpText(),
		IsError:    m.statusErr,
		Styles:     m.styles,
		Bg:         bg,
	})

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), m.renderBody(bodyH), footer)
	return view.PadLinesWithBackground(content, m.width, m.height, bg)
}

func (m Model) renderTitle() string {
	parts := []string{"coursegrid"}
	if s := m.Current(); s != nil {
		title := s.Title()
		if s.Score != nil {
			title += " " + string(schedule.ScoreTier(*s.Score))
		}
		parts = append(parts, title)
		if len(m.set) > 1 {
			parts = append(parts, fmt.Sprintf("%d/%d", m.index+1, len(m.set)))
		}
	}
	return m.styles.Title.Render(view.Fit(strings.Join(parts, "  "), max(0, m.width-2)))
}

func (m Model) renderBody(height int) string {
	bg := m.styles.Palette.Bg
	if m.loading {
		return view.PlaceBox(m.width, height, lipgloss.Center, m.styles.Help.Render("Loading..."), bg)
	}
	if err := m.Current().Validate(); err != nil {
		msg := "No schedule found"
		if !errors.Is(err, schedule.ErrNoClasses) {
			msg = err.Error()
		}
		return view.PlaceBox(m.width, height, lipgloss.Center, m.styles.Help.Render(msg), bg)
	}
	if m.grid.Empty() {
		return view.PlaceBox(m.width, height, lipgloss.Center, m.styles.Help.Render("No meetings fall inside 7:00 AM - 9:00 PM"), bg)
	}
	return m.gridHeader + "\n" + m.viewport.View()
}

func (m Model) statusText() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if ev, ok := m.hover.Resolve(m.grid); ok {
		r := ev.Record
		return strings.Join([]string{r.CourseNumber, ev.AllDays, r.Time, r.Location}, "  ")
	}
	if s := m.Current(); s != nil {
		return fmt.Sprintf("%d meetings from %s", len(s.Classes), m.source)
	}
	return ""
}

func (m Model) helpText() string {
	if m.mode == ModePrompt {
		return m.prompt.View()
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
