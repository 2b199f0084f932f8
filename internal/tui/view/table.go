package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/javiermolinar/coursegrid/internal/layout"
)

// TableHeaders are the columns of the meeting table.
var TableHeaders = []string{"", "Course", "CRN", "Days", "Time", "Location", "Professor", "Type"}

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// MeetingTable builds one row per grouped meeting, led by a color swatch.
func MeetingTable(groups []layout.GroupedEvent, colors layout.ColorMap, styles Styles) TableContent {
	var content TableContent
	for _, g := range groups {
		r := g.Record
		course := r.CourseNumber
		if r.CourseName != "" {
			course += " " + r.CourseName
		}
		content.Rows = append(content.Rows, []string{
			"  ", course, r.CRN, g.Days.Label(), r.Time, r.Location, r.ProfessorName, r.Kind(),
		})

		row := make([]lipgloss.Style, len(TableHeaders))
		for i := range row {
			row[i] = lipgloss.NewStyle().Padding(0, 1)
		}
		if c, ok := colors[r.CRN]; ok {
			row[0] = row[0].Background(lipgloss.Color(c.Hex))
		}
		content.CellStyles = append(content.CellStyles, row)
	}
	return content
}

// RenderTable renders meeting rows with a rounded lipgloss table. A width of
// zero lets the table size itself.
func RenderTable(content TableContent, styles Styles, width int) string {
	t := table.New().
		Headers(TableHeaders...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(styles.Border).
		Rows(content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}
			if row < 0 || row >= len(content.CellStyles) || col < 0 || col >= len(content.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return content.CellStyles[row][col]
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
