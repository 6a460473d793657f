package extract

import (
	"regexp"
	"strings"
	"time"
)

// Document-wide anchors, most specific first. The first match with a
// trimmed length over 2 characters wins per field.
var vesselAnchors = compile(
	`(?i)vessel\s*[:=]\s*([A-Za-z\s.\-]+?)(?:\n|$|IMO|FLAG)`,
	`(?i)name\s+of\s+the\s+vessel\s*[:=]\s*([A-Za-z\s.\-]+?)(?:\n|$|IMO|FLAG)`,
	`(?i)mv\.?\s+([A-Za-z\s.\-]+?)(?:\n|$|IMO|FLAG)`,
)

var portAnchors = compile(
	`(?i)port\s*[:=]\s*([A-Za-z\s.\-]+?)(?:\n|$|TERMINAL|BERTH)`,
	`(?i)port\s+of\s+(?:loading|discharge)\s*[:=]\s*([A-Za-z\s.\-]+?)(?:\n|$|TERMINAL|BERTH)`,
)

// Enrich attaches document-wide vessel/port names and extraction
// metadata to every event in the batch. It runs once per document,
// after sorting; absence of a vessel or port match leaves the field
// unset.
func Enrich(events []Event, text string) []Event {
	vessel := firstAnchor(vesselAnchors, text)
	port := firstAnchor(portAnchors, text)
	now := time.Now().UTC()

	for i := range events {
		if events[i].Vessel == "" {
			events[i].Vessel = vessel
		}
		if events[i].Port == "" {
			events[i].Port = port
		}
		events[i].DocumentLength = len(text)
		events[i].ExtractedAt = now
	}
	return events
}

func firstAnchor(anchors []*regexp.Regexp, text string) string {
	for _, re := range anchors {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v := strings.TrimSpace(m[1])
		if len(v) > 2 {
			return v
		}
	}
	return ""
}
