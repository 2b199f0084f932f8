// Package tui provides the interactive schedule viewer.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/coursegrid/internal/layout"
	"github.com/javiermolinar/coursegrid/internal/schedule"
	"github.com/javiermolinar/coursegrid/internal/tui/commands"
	"github.com/javiermolinar/coursegrid/internal/tui/theme"
	"github.com/javiermolinar/coursegrid/internal/tui/view"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
)

func (m Mode) String() string {
	if m == ModePrompt {
		return "prompt"
	}
	return "normal"
}

// Lines taken by the title bar and the day header above the scrolling grid.
const chromeLines = 2

// Model is the main TUI model. Pointer motion and keyboard focus both drive
// the hover state: entering an event shows its detail box.
type Model struct {
	// Dependencies
	log     zerolog.Logger
	engine  *layout.Engine
	styles  view.Styles
	history commands.History
	copy    commands.CopyFunc
	initCmd tea.Cmd

	// Loaded schedules
	set    schedule.Set
	index  int
	source string

	// Layout of set[index] and the focus order over its events
	grid  layout.Grid
	order []string
	hover layout.Hover

	// Components
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	prompt   textinput.Model
	mode     Mode

	// Rendered day header, kept outside the viewport so it never scrolls
	gridHeader string

	width   int
	height  int
	loading bool

	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger for key presses, focus changes and load errors.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.log = l.With().Str("component", "tui").Logger()
	}
}

// WithHistory enables /save and /history against the snapshot store.
func WithHistory(h commands.History) ModelOption {
	return func(m *Model) {
		m.history = h
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(fn commands.CopyFunc) ModelOption {
	return func(m *Model) {
		m.copy = fn
	}
}

// WithSet starts the viewer on already loaded schedules.
func WithSet(set schedule.Set, source string) ModelOption {
	return func(m *Model) {
		m.setSchedules(set.Ranked(), source)
	}
}

// WithFile loads a schedule file when the program starts.
func WithFile(path string) ModelOption {
	return func(m *Model) {
		m.initCmd = commands.LoadFile(path)
		m.loading = true
	}
}

// WithHistoryEntry loads a saved snapshot when the program starts. It must
// follow WithHistory.
func WithHistoryEntry(id int64) ModelOption {
	return func(m *Model) {
		m.initCmd = commands.LoadHistory(m.history, id)
		m.loading = true
	}
}

// New creates a viewer using the given palette. A nil palette uses the
// default theme.
func New(p *theme.Palette, opts ...ModelOption) Model {
	styles := view.NewStyles(p)

	prompt := textinput.New()
	prompt.Placeholder = "/open schedule.json"
	prompt.CharLimit = 512
	prompt.PromptStyle = styles.Status
	prompt.TextStyle = styles.Status
	prompt.PlaceholderStyle = styles.Help

	h := help.New()
	h.Styles.ShortKey = styles.Header
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help

	m := Model{
		log:      zerolog.Nop(),
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     h,
		viewport: viewport.New(0, 0),
		prompt:   prompt,
	}
	for _, opt := range opts {
		opt(&m)
	}
	// The engine is built after options so it picks up the configured logger.
	m.engine = layout.New(layout.WithLogger(m.log))
	m.relayout()
	return m
}

// Init starts the pending load, if any.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Run starts the TUI.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// Current returns the displayed schedule, or nil when none is loaded.
func (m Model) Current() *schedule.Schedule {
	if m.index < 0 || m.index >= len(m.set) {
		return nil
	}
	return &m.set[m.index]
}

// Hover returns the focus state.
func (m Model) Hover() layout.Hover {
	return m.hover
}

// Grid returns the layout of the displayed schedule.
func (m Model) Grid() layout.Grid {
	return m.grid
}

func (m *Model) setSchedules(set schedule.Set, source string) {
	m.set = set
	m.source = source
	m.index = 0
	m.loading = false
	m.hover = m.hover.Leave()
	if m.engine != nil {
		m.relayout()
	}
}

// relayout recomputes the grid for the displayed schedule and the focus
// order, then refreshes the rendered content.
func (m *Model) relayout() {
	m.grid = m.engine.Layout(m.Current())
	m.order = focusOrder(m.grid)
	if _, ok := m.hover.Resolve(m.grid); !ok {
		m.hover = m.hover.Leave()
	}
	m.refresh()
}

// refresh re-renders the grid into the viewport.
func (m *Model) refresh() {
	geo := view.NewGeometry(m.width)
	focus, _ := m.hover.Target()
	out := view.RenderWithDetail(m.grid, m.styles, view.GridOptions{Geometry: geo, Focus: focus})
	header, body, _ := cutLine(out)
	m.gridHeader = header
	m.viewport.SetContent(body)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.prompt.Width = max(0, width-4)
	m.viewport.Width = width
	m.viewport.Height = max(1, height-chromeLines-view.FooterHeight)
	m.refresh()
}
