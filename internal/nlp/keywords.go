package nlp

import "strings"

// operationIndicators gate the fallback stage: a sentence enters
// classification only when it mentions an operational state change.
var operationIndicators = []string{
	"commenced", "completed", "started", "finished",
	"suspended", "resumed", "stopped", "delayed", "interrupted",
}

// keywordClass is one priority tier of the keyword classifier.
type keywordClass struct {
	eventType string
	title     string
	keywords  []string
}

// keywordClasses is evaluated top to bottom; the first tier with a
// keyword hit wins. Loading and discharging are separate tiers but
// both resolve to the cargo event type.
var keywordClasses = []keywordClass{
	{"arrival", "Arrival", []string{"arrived", "arrival", "reached"}},
	{"departure", "Departure", []string{"departed", "sailed", "left"}},
	{"berthing", "Berthing", []string{"berthed", "moored", "alongside"}},
	{"cargo", "Cargo", []string{"loading", "loaded"}},
	{"cargo", "Cargo", []string{"discharging", "discharged", "unloading"}},
	{"pilot", "Pilot", []string{"pilot", "boarded", "embarked"}},
	{"customs", "Customs", []string{"customs", "boarding"}},
	{"weather", "Weather", []string{"weather", "rain", "storm", "delay"}},
}

// hasOperationIndicator reports whether the lowercased sentence
// mentions an operational state change.
func hasOperationIndicator(lower string) bool {
	for _, ind := range operationIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// classifyKeywords places a lowercased sentence into an event type by
// fixed-priority keyword lookup.
func classifyKeywords(lower string) (eventType, title string, ok bool) {
	for _, class := range keywordClasses {
		for _, kw := range class.keywords {
			if strings.Contains(lower, kw) {
				return class.eventType, class.title, true
			}
		}
	}
	return "", "", false
}
