package extract

import (
	"regexp"
	"strings"
)

var (
	clockToken = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	hhmmToken  = regexp.MustCompile(`^\d{4}$`)
	dateToken  = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{4}$`)
	alphaToken = regexp.MustCompile(`^[A-Za-z\s]+$`)
	dateSep    = regexp.MustCompile(`[./-]`)
)

// capture holds the classified pieces of a single pattern match.
type capture struct {
	timeRaw  string
	dateRaw  string
	location string
}

// groupClassifiers is the ordered (predicate, field) list used to sort
// capture groups into TIME / DATE / LOCATION buckets. Evaluated
// left-to-right per group; the first group to classify into a field
// claims it, and later groups matching an already-filled field are
// ignored. The ordering is load-bearing: a 4-digit token must be read
// as a time before anything else gets a chance at it.
var groupClassifiers = []struct {
	field string
	match func(string) bool
}{
	{"time", func(s string) bool { return clockToken.MatchString(s) || hhmmToken.MatchString(s) }},
	{"date", func(s string) bool { return dateToken.MatchString(s) }},
	{"location", func(s string) bool { return alphaToken.MatchString(s) && len(strings.TrimSpace(s)) > 2 }},
}

// classifyGroups sorts the raw capture groups of one match into a
// capture record. Groups that classify into nothing are dropped
// silently.
func classifyGroups(groups []string) capture {
	var c capture
	for _, g := range groups {
		if g == "" {
			continue
		}
		for _, gc := range groupClassifiers {
			if !gc.match(g) {
				continue
			}
			switch gc.field {
			case "time":
				if c.timeRaw == "" {
					c.timeRaw = g
				}
			case "date":
				if c.dateRaw == "" {
					c.dateRaw = g
				}
			case "location":
				if c.location == "" {
					c.location = strings.TrimSpace(g)
				}
			}
			break
		}
	}
	return c
}

// normalizeClock renders raw time/date tokens into the canonical
// "HH:MM DD/MM/YYYY" form. Either part may be absent; with both absent
// the result is empty. Normalization never fails extraction: a token
// that resists formatting is passed through by naive concatenation.
func normalizeClock(timeRaw, dateRaw string) string {
	var parts []string

	if timeRaw != "" {
		t := timeRaw
		if len(t) == 4 && !strings.Contains(t, ":") {
			t = t[:2] + ":" + t[2:]
		}
		parts = append(parts, t)
	}

	if dateRaw != "" {
		parts = append(parts, dateSep.ReplaceAllString(dateRaw, "/"))
	}

	return strings.Join(parts, " ")
}
