package extract

import (
	"fmt"
	"os"
	"strings"
)

// minInputLength is the trimmed length below which a document carries
// no extractable signal.
const minInputLength = 10

// Fallback supplies supplementary sentence-level events when the
// linguistic engine initialized at startup. It supplements pattern
// events, never replaces them.
type Fallback interface {
	SentenceEvents(text string) []Event
}

// Engine runs the SoF extraction pipeline. It is stateless across
// calls: the catalog and keyword tables are immutable shared state, and
// each call builds its own candidate list, so one Engine may serve
// arbitrarily many concurrent extractions.
type Engine struct {
	defs     []Definition
	fallback Fallback
}

// Option configures an Engine.
type Option func(*Engine)

// WithFallback attaches a linguistic fallback stage. A nil fallback
// leaves the stage disabled for the life of the engine.
func WithFallback(f Fallback) Option {
	return func(e *Engine) {
		e.fallback = f
	}
}

// NewEngine creates an extraction engine over the shared pattern
// catalog.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{defs: Catalog()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractEvents extracts the ordered, deduplicated event sequence from
// raw SoF text. Inputs shorter than 10 trimmed characters yield an
// empty sequence with a logged warning; no condition inside the
// pipeline is fatal.
func (e *Engine) ExtractEvents(text string) []Event {
	if len(strings.TrimSpace(text)) < minInputLength {
		fmt.Fprintf(os.Stderr, "Warning: text too short for meaningful event extraction\n")
		return nil
	}

	var events []Event
	for _, def := range e.defs {
		events = append(events, matchDefinition(def, text)...)
	}

	if e.fallback != nil {
		events = append(events, e.fallback.SentenceEvents(text)...)
	}

	events = Dedupe(events)
	events = SortByTime(events)
	return Enrich(events, text)
}

// matchDefinition applies every pattern of one definition over the full
// text. All patterns are tried and all occurrences kept; overlapping
// signals are resolved later by dedup, not here.
func matchDefinition(def Definition, text string) []Event {
	var events []Event

	for _, re := range def.Patterns {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			ev, ok := buildCandidate(def, idx, text)
			if !ok {
				continue
			}
			events = append(events, ev)
		}
	}
	return events
}

// buildCandidate assembles one raw candidate from a submatch index
// vector. A malformed match drops only that candidate.
func buildCandidate(def Definition, idx []int, text string) (Event, bool) {
	if len(idx) < 2 || idx[0] < 0 || idx[1] > len(text) || idx[0] > idx[1] {
		return Event{}, false
	}
	fullMatch := text[idx[0]:idx[1]]

	groups := make([]string, 0, len(idx)/2-1)
	for i := 2; i+1 < len(idx); i += 2 {
		if idx[i] < 0 || idx[i+1] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[idx[i]:idx[i+1]])
	}

	c := classifyGroups(groups)

	return Event{
		EventType:        def.Type,
		EventName:        def.Name,
		Confidence:       scoreMatch(def, fullMatch, groups),
		StartTime:        normalizeClock(c.timeRaw, c.dateRaw),
		Location:         c.location,
		Remarks:          contextWindow(idx[0], idx[1], text),
		RawMatch:         fullMatch,
		TimeRaw:          c.timeRaw,
		DateRaw:          c.dateRaw,
		ExtractionMethod: MethodPattern,
	}, true
}
