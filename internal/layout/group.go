package layout

import "github.com/javiermolinar/coursegrid/internal/schedule"

// GroupedEvent merges the meetings of one section that share a time range.
type GroupedEvent struct {
	// Record holds the descriptive fields of the first meeting seen for
	// the key. Its Days field is that meeting's raw value; use Days below.
	Record schedule.MeetingRecord
	Days   DaySet
}

// Key returns the grouping key, CRN and literal time text.
func (g GroupedEvent) Key() string {
	return groupKey(g.Record)
}

func groupKey(r schedule.MeetingRecord) string {
	return r.CRN + "-" + r.Time
}

// GroupEvents merges records with the same CRN and the same literal time
// string, unioning their days. Groups are returned in first-seen order.
func GroupEvents(records []schedule.MeetingRecord) []GroupedEvent {
	index := make(map[string]int, len(records))
	var groups []GroupedEvent
	for _, r := range records {
		key := groupKey(r)
		if i, ok := index[key]; ok {
			groups[i].Days = groups[i].Days.Union(ParseDays(r.Days))
			continue
		}
		index[key] = len(groups)
		groups = append(groups, GroupedEvent{Record: r, Days: ParseDays(r.Days)})
	}
	return groups
}
