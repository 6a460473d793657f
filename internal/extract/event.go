// Package extract implements rule-based event extraction for maritime
// Statement of Facts documents.
//
// The pipeline turns raw port-agent text into typed, time-stamped,
// confidence-scored event records without requiring an external API:
// - Weighted regex patterns per event category (arrival, pilot, ...)
// - Clock/date normalization into a canonical "HH:MM DD/MM/YYYY" form
// - A word-window context excerpt per match for audit and review
// - An optional sentence-level linguistic fallback for low-signal text
//
// Extraction degrades, it never aborts: a bad match, a malformed time
// token, or a failed context slice drops that one candidate or falls
// back to a coarser value while the rest of the document is processed.
package extract

import "time"

// Extraction methods recorded on every event.
const (
	MethodPattern    = "pattern_matching"
	MethodNLPContext = "nlp_context"
)

// Event is a single extracted SoF event.
type Event struct {
	EventType  string  `json:"event_type"`
	EventName  string  `json:"event"`
	Confidence float64 `json:"confidence"`

	// StartTime is the normalized "HH:MM DD/MM/YYYY" form, empty when the
	// match carried no usable time or date token.
	StartTime string `json:"start_time,omitempty"`
	Location  string `json:"location,omitempty"`
	Remarks   string `json:"remarks,omitempty"`

	// RawMatch, TimeRaw and DateRaw keep the original tokens for the
	// pattern path; the fallback path leaves them empty.
	RawMatch string `json:"raw_match,omitempty"`
	TimeRaw  string `json:"time_raw,omitempty"`
	DateRaw  string `json:"date_raw,omitempty"`

	// Vessel and Port are document-wide values attached by enrichment.
	Vessel string `json:"vessel,omitempty"`
	Port   string `json:"port,omitempty"`

	ExtractionMethod string `json:"extraction_method"`

	DocumentLength int `json:"document_length"`

	// ExtractedAt is the wall clock of the extraction call. It is the
	// only non-deterministic field and is excluded from equality checks.
	ExtractedAt time.Time `json:"extraction_timestamp"`
}

// HasStartTime reports whether the event carries a normalized timestamp.
func (e *Event) HasStartTime() bool {
	return e.StartTime != ""
}
