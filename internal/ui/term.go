package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/javiermolinar/coursegrid/internal/schedule"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Success messages
	colorOK = color.New(color.FgGreen)

	// Score tiers
	colorTier = map[schedule.Tier]*color.Color{
		schedule.TierExcellent: color.New(color.FgGreen, color.Bold),
		schedule.TierGood:      color.New(color.FgCyan),
		schedule.TierFair:      color.New(color.FgYellow),
		schedule.TierLow:       color.New(color.FgRed),
	}
)

// defaultWidth is used when the terminal size cannot be read.
const defaultWidth = 109

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// DisableColor disables all color output, including lipgloss rendering.
func DisableColor() {
	color.NoColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatOK formats a success message.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatScore renders a score with its tier, or "-" when unscored.
func formatScore(score *float64) string {
	if score == nil {
		return formatMuted("-")
	}
	tier := schedule.ScoreTier(*score)
	return colorTier[tier].Sprintf("%s (%s)", schedule.FormatScore(*score), tier)
}
