package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// logKeyPress logs a key press event.
func (m Model) logKeyPress(msg tea.KeyMsg) {
	m.log.Debug().
		Str("key", msg.String()).
		Stringer("mode", m.mode).
		Msg("key press")
}

// logModeChange logs a mode change.
func (m Model) logModeChange(from, to Mode, reason string) {
	m.log.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Str("reason", reason).
		Msg("mode change")
}

// logFocus logs a hover transition. An empty id means Idle.
func (m Model) logFocus(from, to, reason string) {
	m.log.Debug().
		Str("from", from).
		Str("to", to).
		Stringer("state", m.hover.State()).
		Str("reason", reason).
		Msg("focus change")
}

// logError logs an error.
func (m Model) logError(context string, err error) {
	m.log.Error().
		Str("context", context).
		Err(err).
		Msg("tui error")
}
