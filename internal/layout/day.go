package layout

import "strings"

// Weekday is a grid column, 0 for Monday through 4 for Friday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the columns in display order.
var Weekdays = [NumDays]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// ParseDay decodes a schedule day letter. Weekend and unknown letters are
// rejected.
func ParseDay(letter rune) (Weekday, bool) {
	switch letter {
	case 'M':
		return Monday, true
	case 'T':
		return Tuesday, true
	case 'W':
		return Wednesday, true
	case 'R':
		return Thursday, true
	case 'F':
		return Friday, true
	default:
		return 0, false
	}
}

// Letter returns the single-letter code used in schedule data.
func (d Weekday) Letter() string {
	return string("MTWRF"[d])
}

// String returns the full day name.
func (d Weekday) String() string {
	return [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}[d]
}

// Short returns the three-letter day name.
func (d Weekday) Short() string {
	return d.String()[:3]
}

// DaySet is a set of weekdays.
type DaySet uint8

// ParseDays decodes a days string such as "MWF", dropping unknown letters.
func ParseDays(days string) DaySet {
	var set DaySet
	for _, r := range days {
		if d, ok := ParseDay(r); ok {
			set = set.Add(d)
		}
	}
	return set
}

// Add returns the set with d included.
func (s DaySet) Add(d Weekday) DaySet {
	return s | 1<<uint(d)
}

// Union returns the days present in either set.
func (s DaySet) Union(other DaySet) DaySet {
	return s | other
}

// Has reports whether d is in the set.
func (s DaySet) Has(d Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Len returns the number of days in the set.
func (s DaySet) Len() int {
	n := 0
	for _, d := range Weekdays {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Days returns the members in Monday-to-Friday order.
func (s DaySet) Days() []Weekday {
	out := make([]Weekday, 0, NumDays)
	for _, d := range Weekdays {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Label joins the member letters in M, T, W, R, F order.
func (s DaySet) Label() string {
	var b strings.Builder
	for _, d := range s.Days() {
		b.WriteString(d.Letter())
	}
	return b.String()
}
