package export

import (
	"github.com/javiermolinar/coursegrid/internal/layout"
	"github.com/javiermolinar/coursegrid/internal/schedule"
)

// LegendRow pairs a section with its grid color.
type LegendRow struct {
	CRN          string
	CourseNumber string
	CourseName   string
	Color        layout.Color
	RGB          [3]float64
}

// Legend lists one row per CRN in first-seen order. Colors come from the
// layout pass; when nil they are assigned here.
func Legend(s *schedule.Schedule, colors layout.ColorMap) []LegendRow {
	if s == nil {
		return nil
	}
	if colors == nil {
		colors = layout.AssignColors(s.Classes)
	}

	first := make(map[string]schedule.MeetingRecord, len(s.Classes))
	for _, r := range s.Classes {
		if _, ok := first[r.CRN]; !ok {
			first[r.CRN] = r
		}
	}

	rows := make([]LegendRow, 0, len(first))
	for _, crn := range s.CRNs() {
		r := first[crn]
		c := colors[crn]
		rows = append(rows, LegendRow{
			CRN:          crn,
			CourseNumber: r.CourseNumber,
			CourseName:   r.CourseName,
			Color:        c,
			RGB:          c.RGB(),
		})
	}
	return rows
}
