package extract

import (
	"math"
	"sort"
)

// Summary holds aggregate statistics over a finished event list.
type Summary struct {
	TotalEvents          int            `json:"total_events"`
	EventTypes           map[string]int `json:"event_types,omitempty"`
	AverageConfidence    float64        `json:"average_confidence"`
	HighConfidenceEvents int            `json:"high_confidence_events"`
	ExtractionMethods    []string       `json:"extraction_methods,omitempty"`
	TimeCoverage         int            `json:"time_coverage"`
	LocationCoverage     int            `json:"location_coverage"`

	// Message is set only for the empty-input sentinel.
	Message string `json:"message,omitempty"`
}

// highConfidenceThreshold marks events trusted enough to surface
// without review.
const highConfidenceThreshold = 0.90

// Summarize computes statistics over an extracted event list. All
// counters are built fresh per call; nothing is accumulated across
// calls. An empty input returns the "no events" sentinel.
func Summarize(events []Event) Summary {
	if len(events) == 0 {
		return Summary{Message: "No events extracted"}
	}

	s := Summary{
		TotalEvents: len(events),
		EventTypes:  make(map[string]int),
	}

	methods := make(map[string]bool)
	var confidenceSum float64

	for _, e := range events {
		s.EventTypes[e.EventType]++
		confidenceSum += e.Confidence
		if e.Confidence >= highConfidenceThreshold {
			s.HighConfidenceEvents++
		}
		if e.ExtractionMethod != "" {
			methods[e.ExtractionMethod] = true
		}
		if e.HasStartTime() {
			s.TimeCoverage++
		}
		if e.Location != "" {
			s.LocationCoverage++
		}
	}

	s.AverageConfidence = math.Round(confidenceSum/float64(len(events))*1000) / 1000

	for m := range methods {
		s.ExtractionMethods = append(s.ExtractionMethods, m)
	}
	sort.Strings(s.ExtractionMethods)

	return s
}
