// Package dateutil provides the calendar arithmetic behind term-bounded exports.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DefaultTermWeeks is the length of a term when none is configured.
const DefaultTermWeeks = 15

const dateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a DateRange from two YYYY-MM-DD strings.
// An empty endDate means a single-day range.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	return NewDateRangeIn(startDate, endDate, time.UTC)
}

// NewDateRangeIn is NewDateRange with dates interpreted in loc.
func NewDateRangeIn(startDate, endDate string, loc *time.Location) (*DateRange, error) {
	start, err := ParseDateIn(startDate, loc)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDateIn(endDate, loc)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn parses a YYYY-MM-DD date at midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// DefaultTerm returns a DefaultTermWeeks long range starting on the Monday
// of the week containing now.
func DefaultTerm(now time.Time) DateRange {
	monday, _ := WeekRange(now)
	return DateRange{
		Start: monday,
		End:   monday.AddDate(0, 0, DefaultTermWeeks*7-1),
	}
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (monday, sunday time.Time) {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday = t.AddDate(0, 0, -(weekday - 1))
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FirstOnOrAfter returns the earliest day on or after from whose weekday is
// in days. ok is false when days is empty.
func FirstOnOrAfter(from time.Time, days []time.Weekday) (time.Time, bool) {
	if len(days) == 0 {
		return time.Time{}, false
	}
	from = TruncateToDay(from)
	for i := 0; i < 7; i++ {
		d := from.AddDate(0, 0, i)
		for _, wd := range days {
			if d.Weekday() == wd {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// EndOfDay returns the last second of t's day.
func EndOfDay(t time.Time) time.Time {
	return TruncateToDay(t).AddDate(0, 0, 1).Add(-time.Second)
}
