package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/coursegrid/internal/tui/commands"
)

// Errors stay up a little longer than plain status messages.
const errorStatusDuration = 5 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case commands.LoadedMsg:
		m.setSchedules(msg.Set, msg.Source)
		m.viewport.SetYOffset(0)
		m.log.Info().
			Str("source", msg.Source).
			Int("schedules", len(msg.Set)).
			Msg("schedules loaded")
		return m, m.setStatus(fmt.Sprintf("Loaded %d schedule(s) from %s", len(msg.Set), msg.Source), false)

	case commands.SavedMsg:
		return m, m.setStatus(fmt.Sprintf("Saved to history as #%d", msg.ID), false)

	case commands.ErrMsg:
		m.loading = false
		m.logError("command", msg.Err)
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, false)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setStatus shows a temporary status message and schedules its removal.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	d := commands.StatusDuration
	if isErr {
		d = errorStatusDuration
	}
	m.statusMsg = text
	m.statusErr = isErr
	m.statusTime = time.Now().Add(d)
	return commands.ClearStatusAfter(d)
}
