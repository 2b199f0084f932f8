package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		lipgloss.Left,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		lineWidth := lipgloss.Width(lines[i])
		if lineWidth >= width {
			continue
		}
		lines[i] += paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// SpliceAt draws overlay over base with its top-left corner at (top, left).
// Rows and columns outside base are dropped; base lines shorter than the
// overlay's right edge are padded with spaces.
func SpliceAt(base, overlay string, top, left int, overlayBg lipgloss.Color) string {
	if overlay == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, lipgloss.Width(line))
	}
	if overlayWidth == 0 {
		return base
	}
	left = max(left, 0)
	top = max(top, 0)

	for i, line := range overlayLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}

		if w := lipgloss.Width(line); w < overlayWidth {
			line += lipgloss.NewStyle().Background(overlayBg).Render(strings.Repeat(" ", overlayWidth-w))
		}
		line = ApplyBackgroundResets(line, overlayBg) + ansi.ResetStyle

		baseLine := baseLines[row]
		baseWidth := lipgloss.Width(baseLine)
		if baseWidth < left+overlayWidth {
			baseLine += strings.Repeat(" ", left+overlayWidth-baseWidth)
			baseWidth = left + overlayWidth
		}
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+overlayWidth, baseWidth)
		baseLines[row] = leftSlice + line + rightSlice
	}

	return strings.Join(baseLines, "\n")
}

// ApplyBackgroundResets reapplies the overlay background after ANSI resets
// so inner styled spans do not punch holes in the box.
func ApplyBackgroundResets(line string, bg lipgloss.Color) string {
	bgSeq := BackgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// BackgroundSeq returns the background escape sequence for a color.
func BackgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}

// Fit truncates s to width cells with an ellipsis and pads it with spaces.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
