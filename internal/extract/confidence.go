package extract

import "strings"

// weakMatchLength is the trimmed match length below which a match is
// penalized as weak.
const weakMatchLength = 10

// scoreMatch adjusts a definition's base confidence by match quality:
// a small boost for carrying any detail, another for secondary detail
// beyond the first group, and a penalty for very short matches. The
// result is clamped to [0, 1].
func scoreMatch(def Definition, fullMatch string, groups []string) float64 {
	score := def.BaseConfidence

	if anyNonEmpty(groups) {
		score += 0.05
	}
	if len(groups) >= 2 && anyNonEmpty(groups[1:]) {
		score += 0.05
	}
	if len(strings.TrimSpace(fullMatch)) < weakMatchLength {
		score -= 0.10
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

func anyNonEmpty(groups []string) bool {
	for _, g := range groups {
		if g != "" {
			return true
		}
	}
	return false
}
