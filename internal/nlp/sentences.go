// Package nlp implements the sentence-level fallback stage of SoF
// extraction: lightweight sentence segmentation, keyword-based event
// classification, and an optional ONNX text classifier for sentences
// the keyword tables cannot place.
//
// The whole package is gated on model assets being present at startup.
// Without them the fallback stage is disabled and extraction runs on
// patterns alone.
package nlp

import (
	"regexp"
	"strings"
)

// sentenceBoundary splits on terminal punctuation runs followed by
// whitespace, and on blank-line or line breaks. SoF documents are
// mostly line-oriented, so line breaks are treated as hard boundaries.
var sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n+`)

// splitSentences segments text into trimmed, non-empty sentences.
func splitSentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
