package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned for time text that is not "H:MM AM" or "H:MMPM".
var ErrInvalidTime = errors.New("invalid time of day")

// ErrTimeOutOfRange is returned for well-formed text whose hour is not 1..12
// or whose minute is past 59. It wraps ErrInvalidTime.
var ErrTimeOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidTime)

// ParseSlot converts a 12-hour time such as "12:20PM" or "9:05 AM" to a slot
// index relative to OriginHour. Times before the origin give negative slots.
func ParseSlot(text string) (int, error) {
	hour, minute, err := ParseClock(text)
	if err != nil {
		return 0, err
	}
	return clockSlot(hour, minute), nil
}

// Slot is ParseSlot with a degraded fallback: unparseable text is logged
// and mapped to slot 0. Out of range numbers keep their arithmetic so the
// grid bounds drop them.
func (e *Engine) Slot(text string) int {
	hour, minute, err := ParseClock(text)
	switch {
	case err == nil:
	case errors.Is(err, ErrTimeOutOfRange):
		e.log.Warn().Err(err).Str("time", text).Msg("time out of range")
	default:
		e.log.Warn().Err(err).Str("time", text).Msg("unparseable time, using slot 0")
		return 0
	}
	return clockSlot(hour, minute)
}

func clockSlot(hour, minute int) int {
	return (hour-OriginHour)*SlotsPerHour + minute/SlotMinutes
}

// ParseClock converts a 12-hour time to a 24-hour hour and minute. On
// ErrTimeOutOfRange the converted numbers are still returned.
func ParseClock(text string) (int, int, error) {
	fields := strings.Fields(normalizeMeridiem(text))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}
	clock, meridiem := fields[0], fields[1]
	if meridiem != "AM" && meridiem != "PM" {
		return 0, 0, fmt.Errorf("%w: %q: missing AM/PM", ErrInvalidTime, text)
	}

	h, m, ok := strings.Cut(clock, ":")
	if !ok || len(h) < 1 || len(h) > 2 || len(m) != 2 || !isDigits(h) || !isDigits(m) {
		return 0, 0, fmt.Errorf("%w: %q: want H:MM", ErrInvalidTime, text)
	}
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	inRange := hour >= 1 && hour <= 12 && minute <= 59

	switch {
	case meridiem == "PM" && hour != 12:
		hour += 12
	case meridiem == "AM" && hour == 12:
		hour = 0
	}
	if !inRange {
		return hour, minute, fmt.Errorf("%w: %q", ErrTimeOutOfRange, text)
	}
	return hour, minute, nil
}

// normalizeMeridiem upper-cases the text and inserts a space before a
// trailing AM/PM marker when there is none.
func normalizeMeridiem(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	if len(s) < 2 {
		return s
	}
	marker := s[len(s)-2:]
	if marker != "AM" && marker != "PM" {
		return s
	}
	return strings.TrimSpace(s[:len(s)-2]) + " " + marker
}

// SplitRange splits "9:00AM - 9:50AM" into its two ends. A missing
// delimiter leaves end empty.
func SplitRange(timeRange string) (start, end string) {
	start, end, _ = strings.Cut(timeRange, " - ")
	return start, end
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
