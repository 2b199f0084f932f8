// Package export writes schedules to formats other tools understand.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/coursegrid/internal/dateutil"
	"github.com/javiermolinar/coursegrid/internal/layout"
	"github.com/javiermolinar/coursegrid/internal/schedule"
)

// ErrInvalidTerm is returned for a term that ends before it starts.
var ErrInvalidTerm = errors.New("term must end on or after its start")

const icsLocalFormat = "20060102T150405"

var rruleDays = [layout.NumDays]rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}

// Term bounds the weekly recurrence of exported events.
type Term struct {
	Start    time.Time
	End      time.Time
	Location *time.Location // nil means time.Local
}

// NewTerm builds a Term from a date range.
func NewTerm(r dateutil.DateRange, loc *time.Location) Term {
	return Term{Start: r.Start, End: r.End, Location: loc}
}

func (t Term) location() *time.Location {
	if t.Location == nil {
		return time.Local
	}
	return t.Location
}

// Validate reports ErrInvalidTerm for inverted ranges.
func (t Term) Validate() error {
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("%w: missing dates", ErrInvalidTerm)
	}
	if dateutil.TruncateToDay(t.End).Before(dateutil.TruncateToDay(t.Start)) {
		return ErrInvalidTerm
	}
	return nil
}

// Result summarizes an export.
type Result struct {
	Events      int
	Occurrences int
	Skipped     []string // group keys that could not be exported
}

// Exporter writes iCalendar files.
type Exporter struct {
	log zerolog.Logger
	now func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger for skipped events.
func WithLogger(l zerolog.Logger) Option {
	return func(x *Exporter) {
		x.log = l.With().Str("component", "export").Logger()
	}
}

// WithClock overrides the DTSTAMP clock.
func WithClock(now func() time.Time) Option {
	return func(x *Exporter) {
		x.now = now
	}
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	x := &Exporter{log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ICS writes one weekly recurring VEVENT per grouped meeting. Colors come
// from the layout pass; when nil they are assigned here.
func (x *Exporter) ICS(w io.Writer, s *schedule.Schedule, colors layout.ColorMap, term Term) (Result, error) {
	var res Result
	if err := s.Validate(); err != nil {
		return res, err
	}
	if err := term.Validate(); err != nil {
		return res, err
	}
	if colors == nil {
		colors = layout.AssignColors(s.Classes)
	}

	loc := term.location()
	cal := ical.NewCalendarFor("coursegrid")
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName(s.Title())
	if named(loc) {
		cal.SetXWRTimezone(loc.String())
	}

	stamp := x.now()
	for _, g := range layout.GroupEvents(s.Classes) {
		n, err := x.addEvent(cal, g, colors, term, loc, stamp)
		if err != nil {
			x.log.Warn().Err(err).Str("crn", g.Record.CRN).Str("time", g.Record.Time).Msg("skipping event")
			res.Skipped = append(res.Skipped, g.Key())
			continue
		}
		res.Events++
		res.Occurrences += n
	}

	if err := cal.SerializeTo(w); err != nil {
		return res, fmt.Errorf("writing calendar: %w", err)
	}
	return res, nil
}

func (x *Exporter) addEvent(cal *ical.Calendar, g layout.GroupedEvent, colors layout.ColorMap, term Term, loc *time.Location, stamp time.Time) (int, error) {
	if g.Days.Len() == 0 {
		return 0, errors.New("no weekdays")
	}

	startText, endText := layout.SplitRange(g.Record.Time)
	sh, sm, err := layout.ParseClock(startText)
	if err != nil {
		return 0, err
	}
	eh, em, err := layout.ParseClock(endText)
	if err != nil {
		return 0, err
	}
	length := time.Duration((eh*60+em)-(sh*60+sm)) * time.Minute
	if length <= 0 {
		length = layout.SlotMinutes * time.Minute
	}

	var (
		weekdays []time.Weekday
		byday    []rrule.Weekday
	)
	for _, d := range g.Days.Days() {
		weekdays = append(weekdays, time.Weekday(d+1))
		byday = append(byday, rruleDays[d])
	}

	first, _ := dateutil.FirstOnOrAfter(term.Start.In(loc), weekdays)
	dtstart := time.Date(first.Year(), first.Month(), first.Day(), sh, sm, 0, 0, loc)
	until := dateutil.EndOfDay(time.Date(term.End.Year(), term.End.Month(), term.End.Day(), 0, 0, 0, 0, loc))
	if dtstart.After(until) {
		return 0, errors.New("no meeting inside the term")
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byday,
		Dtstart:   dtstart,
		Until:     until,
	})
	if err != nil {
		return 0, fmt.Errorf("building recurrence: %w", err)
	}
	occurrences := len(rule.All())

	ev := cal.AddEvent(uid(g))
	ev.SetDtStampTime(stamp)
	setTime(ev, ical.ComponentPropertyDtStart, dtstart)
	setTime(ev, ical.ComponentPropertyDtEnd, dtstart.Add(length))
	ev.AddRrule(rule.OrigOptions.RRuleString())
	ev.SetSummary(summary(g.Record))
	ev.SetDescription(description(g))
	if g.Record.Location != "" {
		ev.SetLocation(g.Record.Location)
	}
	if c, ok := colors[g.Record.CRN]; ok {
		ev.SetColor(c.Hex)
	}
	if g.Record.IsLab {
		ev.AddCategory("Lab")
	} else {
		ev.AddCategory("Lecture")
	}

	return occurrences, nil
}

// setTime writes a local time with its TZID, or UTC when the zone has no
// IANA name.
func setTime(ev *ical.VEvent, prop ical.ComponentProperty, t time.Time) {
	if named(t.Location()) {
		ev.SetProperty(prop, t.Format(icsLocalFormat), ical.WithTZID(t.Location().String()))
		return
	}
	ev.SetProperty(prop, t.UTC().Format(icsLocalFormat)+"Z")
}

func named(loc *time.Location) bool {
	return loc != time.Local && loc != time.UTC && loc.String() != "Local" && loc.String() != "UTC"
}

func uid(g layout.GroupedEvent) string {
	clean := strings.NewReplacer(" ", "", ":", "")
	return fmt.Sprintf("%s-%s-%s@coursegrid", g.Record.CRN, clean.Replace(g.Record.Time), g.Days.Label())
}

func summary(r schedule.MeetingRecord) string {
	name := strings.TrimSpace(r.CourseNumber + " " + r.CourseName)
	if name == "" {
		name = "CRN " + r.CRN
	}
	if r.IsLab {
		name += " (Lab)"
	}
	return name
}

func description(g layout.GroupedEvent) string {
	lines := []string{"CRN: " + g.Record.CRN, "Days: " + g.Days.Label()}
	if g.Record.ProfessorName != "" {
		lines = append(lines, "Professor: "+g.Record.ProfessorName)
	}
	return strings.Join(lines, "\n")
}
