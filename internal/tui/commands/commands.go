// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/coursegrid/internal/schedule"
	"github.com/javiermolinar/coursegrid/internal/store"
)

// History is the part of the snapshot store the TUI needs.
type History interface {
	Get(ctx context.Context, id int64) (*store.Entry, error)
	Save(ctx context.Context, label, source string, s *schedule.Schedule) (int64, error)
}

// LoadedMsg is sent when a set of schedules is ready to display.
type LoadedMsg struct {
	Set    schedule.Set // ranked
	Source string
}

// SavedMsg is sent when a schedule was written to history.
type SavedMsg struct {
	ID    int64
	Label string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// StatusDuration is how long a status message stays up.
const StatusDuration = 3 * time.Second

// LoadFile reads a schedule file and ranks its schedules.
func LoadFile(path string) tea.Cmd {
	return func() tea.Msg {
		set, err := schedule.Load(path)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return LoadedMsg{Set: set.Ranked(), Source: path}
	}
}

// LoadHistory loads one saved snapshot.
func LoadHistory(h History, id int64) tea.Cmd {
	return func() tea.Msg {
		if h == nil {
			return ErrMsg{Err: errors.New("history is not available")}
		}
		entry, err := h.Get(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return LoadedMsg{
			Set:    schedule.Set{*entry.Schedule},
			Source: fmt.Sprintf("history #%d", entry.ID),
		}
	}
}

// SaveSnapshot writes the displayed schedule to history.
func SaveSnapshot(h History, label, source string, s *schedule.Schedule) tea.Cmd {
	return func() tea.Msg {
		if h == nil {
			return ErrMsg{Err: errors.New("history is not available")}
		}
		id, err := h.Save(context.Background(), label, source, s)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving snapshot: %w", err)}
		}
		return SavedMsg{ID: id, Label: label}
	}
}

// CopyFunc writes text to a clipboard.
type CopyFunc func(string) error

// SystemClipboard writes to the system clipboard.
var SystemClipboard CopyFunc = clipboard.WriteAll

// Copy writes text with write and reports the result as a status message.
func Copy(write CopyFunc, text, what string) tea.Cmd {
	return func() tea.Msg {
		if write == nil {
			write = SystemClipboard
		}
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copy failed: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what}
	}
}

// ClearStatusAfter sends ClearStatusMsg once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
