package extract

import (
	"math"
	"testing"
)

func TestScoreMatch(t *testing.T) {
	def := Definition{BaseConfidence: 0.80}

	cases := []struct {
		name      string
		fullMatch string
		groups    []string
		want      float64
	}{
		{
			name:      "no groups",
			fullMatch: "pilot boarded the vessel",
			groups:    nil,
			want:      0.80,
		},
		{
			name:      "one group",
			fullMatch: "loading commenced at 09:00",
			groups:    []string{"09:00"},
			want:      0.85,
		},
		{
			name:      "two groups",
			fullMatch: "loading commenced at 09:00 on 01/03/2024",
			groups:    []string{"09:00", "01/03/2024"},
			want:      0.90,
		},
		{
			name:      "secondary group empty",
			fullMatch: "loading commenced at 09:00",
			groups:    []string{"09:00", ""},
			want:      0.85,
		},
		{
			name:      "weak match penalized",
			fullMatch: "all fast",
			groups:    nil,
			want:      0.70,
		},
		{
			name:      "weak match with detail",
			fullMatch: "nor 0930",
			groups:    []string{"0930"},
			want:      0.75,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := scoreMatch(def, c.fullMatch, c.groups)
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("scoreMatch = %v, want %v", got, c.want)
			}
		})
	}
}

func TestScoreMatchClamped(t *testing.T) {
	high := Definition{BaseConfidence: 0.95}
	got := scoreMatch(high, "vessel arrived at 06:30 on 12/01/2024", []string{"06:30", "12/01/2024"})
	if got != 1.0 {
		t.Errorf("score above ceiling not clamped: %v", got)
	}

	low := Definition{BaseConfidence: 0.05}
	got = scoreMatch(low, "nor", nil)
	if got != 0.0 {
		t.Errorf("score below floor not clamped: %v", got)
	}
}
