package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/coursegrid/internal/layout"
	"github.com/javiermolinar/coursegrid/internal/tui/commands"
	"github.com/javiermolinar/coursegrid/internal/tui/input"
)

type keyMap struct {
	Left         key.Binding
	Right        key.Binding
	Up           key.Binding
	Down         key.Binding
	Next         key.Binding
	Prev         key.Binding
	Leave        key.Binding
	NextSchedule key.Binding
	PrevSchedule key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Copy         key.Binding
	Prompt       key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "earlier")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "later")),
		Next:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "back")),
		Leave:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		NextSchedule: key.NewBinding(key.WithKeys("n"), key.WithHelp("n/p", "schedule")),
		PrevSchedule: key.NewBinding(key.WithKeys("p")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Prompt:       key.NewBinding(key.WithKeys("/", ":"), key.WithHelp("/", "command")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Leave, k.NextSchedule, k.Copy, k.Prompt, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Next, k.Prev, k.Leave},
		{k.NextSchedule, k.PageDown, k.Copy, k.Prompt, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModePrompt {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.focus(m.step(1), "next")
	case key.Matches(msg, m.keys.Prev):
		m.focus(m.step(-1), "prev")
	case key.Matches(msg, m.keys.Down):
		m.focus(m.within(1), "down")
	case key.Matches(msg, m.keys.Up):
		m.focus(m.within(-1), "up")
	case key.Matches(msg, m.keys.Right):
		m.focus(m.across(1), "right")
	case key.Matches(msg, m.keys.Left):
		m.focus(m.across(-1), "left")
	case key.Matches(msg, m.keys.Leave):
		m.leave("esc")

	case key.Matches(msg, m.keys.NextSchedule):
		m.switchSchedule(1)
	case key.Matches(msg, m.keys.PrevSchedule):
		m.switchSchedule(-1)

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)

	case key.Matches(msg, m.keys.Copy):
		ev, ok := m.hover.Resolve(m.grid)
		if !ok {
			return m, m.setStatus("Nothing focused", false)
		}
		return m, commands.Copy(m.copy, detailText(ev), ev.Record.CRN)

	case key.Matches(msg, m.keys.Prompt):
		m.setMode(ModePrompt, "prompt key")
		m.prompt.SetValue("/")
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	}
	return m, nil
}

// handlePromptKeys handles keys while the command prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("cancel")
		return m, nil
	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		value := m.prompt.Value()
		m.closePrompt("submit")
		return m.runPrompt(value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt(reason string) {
	m.prompt.Reset()
	m.prompt.Blur()
	m.setMode(ModeNormal, reason)
}

// runPrompt executes a submitted prompt command.
func (m Model) runPrompt(value string) (tea.Model, tea.Cmd) {
	name, arg, ok := input.Parse(value)
	if !ok {
		return m, m.setStatus("Commands start with /", true)
	}

	switch name {
	case "/open":
		if arg == "" {
			return m, m.setStatus("Usage: /open FILE", true)
		}
		m.loading = true
		return m, commands.LoadFile(arg)

	case "/save":
		s := m.Current()
		if s == nil {
			return m, m.setStatus("No schedule to save", true)
		}
		return m, commands.SaveSnapshot(m.history, arg, m.source, s)

	case "/history":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return m, m.setStatus("Usage: /history ID", true)
		}
		m.loading = true
		return m, commands.LoadHistory(m.history, id)

	case "/help":
		names := make([]string, 0, len(input.Commands))
		for _, c := range input.Commands {
			names = append(names, c.Name)
		}
		return m, m.setStatus("Commands: "+strings.Join(names, " "), false)
	}
	return m, m.setStatus("Unknown command "+name, true)
}

func (m *Model) setMode(to Mode, reason string) {
	if m.mode != to {
		m.logModeChange(m.mode, to, reason)
	}
	m.mode = to
}

// focus enters Hovering on id. An empty id leaves focus unchanged.
func (m *Model) focus(id, reason string) {
	if id == "" {
		return
	}
	prev, _ := m.hover.Target()
	m.hover = m.hover.Enter(id)
	m.logFocus(prev, id, reason)
	if ev, ok := m.grid.Find(id); ok {
		m.ensureVisible(ev)
	}
	m.refresh()
}

func (m *Model) leave(reason string) {
	prev, ok := m.hover.Target()
	m.hover = m.hover.Leave()
	if ok {
		m.logFocus(prev, "", reason)
	}
	m.refresh()
}

// switchSchedule shows the next or previous ranked schedule, clamped to the
// loaded set.
func (m *Model) switchSchedule(delta int) {
	next := min(max(m.index+delta, 0), len(m.set)-1)
	if next < 0 || next == m.index {
		return
	}
	m.index = next
	m.hover = m.hover.Leave()
	m.viewport.SetYOffset(0)
	m.relayout()
}

// ensureVisible scrolls so the event's first and last rows are on screen.
func (m *Model) ensureVisible(ev layout.PositionedEvent) {
	top, bottom := ev.StartSlot, ev.EndSlot()-1
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}
