package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/coursegrid/internal/config"
	"github.com/javiermolinar/coursegrid/internal/dateutil"
	"github.com/javiermolinar/coursegrid/internal/export"
	"github.com/javiermolinar/coursegrid/internal/layout"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		rank     int
		out      string
		start    string
		end      string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a schedule to an iCalendar file",
		Long: `Write one weekly recurring event per meeting to an .ics file.

The term comes from --start/--end, then from [export] in the config, and
otherwise defaults to 15 weeks from the Monday of the current week. Events
carry the same colors as the grid.`,
		Example: `  coursegrid export fall.json --out fall.ics
  coursegrid export fall.json --start 2025-08-25 --end 2025-12-10 --tz America/New_York
  coursegrid export fall.json --out - > fall.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSchedule(args[0], rank)
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}

			term, err := resolveTerm(a.config, start, end, timezone, time.Now())
			if err != nil {
				return err
			}

			var colors layout.ColorMap
			a.engine(layout.WithColorSink(func(c layout.ColorMap) { colors = c })).Layout(s)

			w, closeOut, err := openOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			res, err := export.New(export.WithLogger(a.log)).ICS(w, s, colors, term)
			if cerr := closeOut(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("exporting %s: %w", args[0], err)
			}

			// Keep stdout clean when the calendar itself goes there.
			report := cmd.OutOrStdout()
			if out == "-" {
				report = cmd.ErrOrStderr()
			}
			fmt.Fprintln(report, formatOK(fmt.Sprintf("Wrote %d events (%d meetings) to %s",
				res.Events, res.Occurrences, outputName(out))))
			fmt.Fprintln(report, formatMuted(fmt.Sprintf("Term %s to %s",
				term.Start.Format("2006-01-02"), term.End.Format("2006-01-02"))))
			if len(res.Skipped) > 0 {
				fmt.Fprintln(report, formatMuted("Skipped: "+strings.Join(res.Skipped, ", ")))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rank, "rank", "r", 1, "Schedule rank within the file")
	cmd.Flags().StringVarP(&out, "out", "o", "schedule.ics", "Output file, - for stdout")
	cmd.Flags().StringVar(&start, "start", "", "First day of the term (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day of the term (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timezone, "tz", "", "IANA time zone of the class times")
	return cmd
}

// resolveTerm picks the export term: flags first, then config, then the
// default term around now.
func resolveTerm(cfg *config.Config, start, end, timezone string, now time.Time) (export.Term, error) {
	var loc *time.Location
	var err error
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
	} else {
		loc, err = cfg.Location()
	}
	if err != nil {
		return export.Term{}, fmt.Errorf("time zone: %w", err)
	}

	var r dateutil.DateRange
	switch {
	case start != "":
		dr, err := dateutil.NewDateRangeIn(start, end, loc)
		if err != nil {
			return export.Term{}, fmt.Errorf("term: %w", err)
		}
		r = *dr
	case end != "":
		return export.Term{}, errors.New("term: --end needs --start")
	case cfg.HasTerm():
		dr, err := dateutil.NewDateRangeIn(cfg.Export.TermStart, cfg.Export.TermEnd, loc)
		if err != nil {
			return export.Term{}, fmt.Errorf("term: %w", err)
		}
		r = *dr
	default:
		r = dateutil.DefaultTerm(now.In(loc))
	}

	term := export.NewTerm(r, loc)
	return term, term.Validate()
}

func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func outputName(path string) string {
	if path == "-" {
		return "stdout"
	}
	return path
}
