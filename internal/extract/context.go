package extract

import (
	"regexp"
	"strings"
)

const (
	// contextCharWindow is the raw character slice taken around a match
	// before word-level trimming.
	contextCharWindow = 1000

	// contextWords is the word budget on each side of the match.
	contextWords = 150

	// contextFallbackChars is the degraded window size when word-offset
	// arithmetic cannot be applied.
	contextFallbackChars = 500
)

var spaceRun = regexp.MustCompile(`\s+`)

// contextWindow extracts a bounded word window around the match at
// [start, end) in text, for audit and review. Up to contextWords words
// are kept on each side; truncation relative to the character slice is
// marked with leading/trailing ellipses. Degrades to the first 500
// characters of the document rather than failing.
func contextWindow(start, end int, text string) string {
	if start < 0 || end > len(text) || start > end {
		return firstChars(text, contextFallbackChars)
	}

	sliceStart := start - contextCharWindow
	if sliceStart < 0 {
		sliceStart = 0
	}
	sliceEnd := end + contextCharWindow
	if sliceEnd > len(text) {
		sliceEnd = len(text)
	}

	words := strings.Fields(strings.TrimSpace(text[sliceStart:sliceEnd]))
	if len(words) == 0 {
		return firstChars(text, contextFallbackChars)
	}

	// Word offsets of the match relative to the slice, computed by
	// counting words before the match in the full text versus before
	// the slice start.
	matchWordStart := len(strings.Fields(text[:start]))
	matchWordEnd := len(strings.Fields(text[:end]))
	sliceWordStart := len(strings.Fields(text[:sliceStart]))

	relStart := matchWordStart - sliceWordStart
	relEnd := matchWordEnd - sliceWordStart

	before := relStart - contextWords
	if before < 0 {
		before = 0
	}
	after := relEnd + contextWords
	if after > len(words) {
		after = len(words)
	}
	if before > after {
		return firstChars(text, contextFallbackChars)
	}

	window := strings.Join(words[before:after], " ")
	window = strings.TrimSpace(spaceRun.ReplaceAllString(window, " "))

	if before > 0 {
		window = "... " + window
	}
	if after < len(words) {
		window = window + " ..."
	}
	return window
}

func firstChars(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n]
}
