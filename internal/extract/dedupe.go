package extract

import "sort"

// dedupeKey is the coarse identity of an event within one extraction
// call. Two same-type events that both lack a start time and location
// collapse into one; that is a documented limitation of the key, not an
// accident.
type dedupeKey struct {
	eventType string
	startTime string
	location  string
}

// Dedupe keeps the first-seen event per (type, start_time, location)
// key, preserving input order. Idempotent.
func Dedupe(events []Event) []Event {
	seen := make(map[dedupeKey]bool, len(events))
	out := make([]Event, 0, len(events))

	for _, e := range events {
		k := dedupeKey{e.EventType, e.StartTime, e.Location}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// SortByTime orders timestamped events by lexicographic comparison of
// their normalized start-time strings and moves untimed events to the
// end in their original relative order (stable partition).
//
// The comparison is deliberately not calendar-aware: "09:00 01/01/2025"
// sorts before "09:00 31/12/2024". Downstream laytime tooling depends
// on the string ordering, so it is kept as-is.
func SortByTime(events []Event) []Event {
	timed := make([]Event, 0, len(events))
	untimed := make([]Event, 0)

	for _, e := range events {
		if e.HasStartTime() {
			timed = append(timed, e)
		} else {
			untimed = append(untimed, e)
		}
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].StartTime < timed[j].StartTime
	})

	return append(timed, untimed...)
}
