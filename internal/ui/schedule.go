package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/coursegrid/internal/export"
	"github.com/javiermolinar/coursegrid/internal/layout"
	"github.com/javiermolinar/coursegrid/internal/schedule"
	"github.com/javiermolinar/coursegrid/internal/tui/view"
)

// Errors reported by schedule commands.
var (
	ErrRankOutOfRange = errors.New("rank out of range")
	ErrUnknownCRN     = errors.New("no meeting with that CRN on the grid")
)

// noSchedule is printed in place of an empty grid.
const noSchedule = "No schedule found"

// loadSchedule reads path and returns the schedule at the 1-based rank.
func loadSchedule(path string, rank int) (*schedule.Schedule, error) {
	set, err := schedule.Load(path)
	if err != nil {
		return nil, err
	}
	ranked := set.Ranked()
	if rank < 1 || rank > len(ranked) {
		return nil, fmt.Errorf("%w: %d (file has %d)", ErrRankOutOfRange, rank, len(ranked))
	}
	return &ranked[rank-1], nil
}

func (a *App) gridCmd() *cobra.Command {
	var (
		rank  int
		focus string
		width int
	)

	cmd := &cobra.Command{
		Use:   "grid FILE",
		Short: "Print the weekly grid of a schedule",
		Long: `Print the Monday to Friday grid of one schedule.

Files may hold several ranked schedules; --rank picks one (1 is the best
score). --focus opens the detail box of a section as the viewer does.`,
		Example: `  coursegrid grid fall.json
  coursegrid grid fall.json --rank 2 --focus 13466`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchedule(args[0], rank)
			if err != nil {
				return err
			}
			return a.printGrid(cmd.OutOrStdout(), s, focus, width)
		},
	}

	cmd.Flags().IntVarP(&rank, "rank", "r", 1, "Schedule rank within the file")
	cmd.Flags().StringVar(&focus, "focus", "", "Show the detail box for this CRN")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Grid width (default terminal width)")
	return cmd
}

// printGrid renders s as a grid, optionally with a detail box.
func (a *App) printGrid(w io.Writer, s *schedule.Schedule, focusCRN string, width int) error {
	if err := s.Validate(); err != nil {
		if errors.Is(err, schedule.ErrNoClasses) {
			fmt.Fprintln(w, noSchedule)
			return nil
		}
		return err
	}
	if width <= 0 {
		width = termWidth()
	}

	g := a.engine().Layout(s)
	opts := view.GridOptions{Geometry: view.NewGeometry(width)}
	if focusCRN != "" {
		id, ok := firstEvent(g, focusCRN)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCRN, focusCRN)
		}
		opts.Focus = id
	}

	fmt.Fprintln(w, formatHeader(s.Title()))
	fmt.Fprintln(w, view.RenderWithDetail(g, a.styles(), opts))
	return nil
}

func firstEvent(g layout.Grid, crn string) (string, bool) {
	for _, ev := range g.Events {
		if ev.Record.CRN == crn {
			return ev.ID(), true
		}
	}
	return "", false
}

func (a *App) showCmd() *cobra.Command {
	var (
		rank int
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Show a schedule's meetings as a table",
		Long: `Display the grouped meetings of a schedule in a table.

With --all, list every schedule in the file with its score instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if all {
				set, err := schedule.Load(args[0])
				if err != nil {
					return err
				}
				printRanking(out, set.Ranked())
				return nil
			}

			s, err := loadSchedule(args[0], rank)
			if err != nil {
				return err
			}
			a.printTable(out, s)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rank, "rank", "r", 1, "Schedule rank within the file")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every schedule in the file")
	return cmd
}

func (a *App) printTable(w io.Writer, s *schedule.Schedule) {
	if s.Validate() != nil {
		fmt.Fprintln(w, noSchedule)
		return
	}

	groups := layout.GroupEvents(s.Classes)
	colors := layout.AssignColors(s.Classes)
	styles := a.styles()

	fmt.Fprintf(w, "%s  %s\n", formatHeader(s.Title()), formatScore(s.Score))
	fmt.Fprintln(w, view.RenderTable(view.MeetingTable(groups, colors, styles), styles, 0))

	labs := 0
	for _, g := range groups {
		if g.Record.IsLab {
			labs++
		}
	}
	fmt.Fprintln(w, formatMuted(fmt.Sprintf("%d meetings, %d sections, %d labs",
		len(groups), len(s.CRNs()), labs)))
}

func printRanking(w io.Writer, set schedule.Set) {
	if len(set) == 0 {
		fmt.Fprintln(w, noSchedule)
		return
	}
	for i, s := range set {
		fmt.Fprintf(w, "%2d. %-20s %-22s %s\n",
			i+1, s.Title(), formatScore(s.Score),
			formatMuted(fmt.Sprintf("%d sections", len(s.CRNs()))))
	}
}

func (a *App) colorsCmd() *cobra.Command {
	var rank int

	cmd := &cobra.Command{
		Use:   "colors FILE",
		Short: "List the color assigned to each section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchedule(args[0], rank)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if s.Validate() != nil {
				fmt.Fprintln(out, noSchedule)
				return nil
			}

			var colors layout.ColorMap
			a.engine(layout.WithColorSink(func(c layout.ColorMap) { colors = c })).Layout(s)

			for _, row := range export.Legend(s, colors) {
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(row.Color.Hex)).Render("    ")
				fmt.Fprintf(out, "%s %-6s %-10s %-8s %s %s\n",
					swatch, row.CRN, row.CourseNumber, row.Color.Hex,
					formatMuted(fmt.Sprintf("rgb(%.0f, %.0f, %.0f)", row.RGB[0]*255, row.RGB[1]*255, row.RGB[2]*255)),
					row.CourseName)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rank, "rank", "r", 1, "Schedule rank within the file")
	return cmd
}
