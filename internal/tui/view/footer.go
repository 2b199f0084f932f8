package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW     int
	StatusText string
	HelpText   string
	IsError    bool
	Styles     Styles
	Bg         lipgloss.Color
}

// FooterHeight is the number of lines RenderFooter produces.
const FooterHeight = 2

// RenderFooter renders the status line above the key help line.
func RenderFooter(model FooterModel) string {
	statusStyle := model.Styles.Status
	if model.IsError {
		statusStyle = model.Styles.Error
	}
	s := footerLine(model.InnerW, statusStyle, model.StatusText) + "\n" +
		footerLine(model.InnerW, model.Styles.Help, model.HelpText)
	return PlaceBox(model.InnerW, FooterHeight, lipgloss.Top, s, model.Bg)
}

func footerLine(width int, style lipgloss.Style, text string) string {
	if width <= 0 {
		return style.Render(text)
	}
	return style.Render(ansi.Truncate(text, width, "…"))
}
