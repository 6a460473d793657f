package nlp

import (
	"math"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminal punctuation",
			text: "Loading commenced. Heavy rain stopped work! Operations resumed?",
			want: []string{"Loading commenced", "Heavy rain stopped work", "Operations resumed"},
		},
		{
			name: "line oriented",
			text: "PILOT BOARDED: 0715 HRS\nALL FAST: 0900 HRS\n\nNOR TENDERED",
			want: []string{"PILOT BOARDED: 0715 HRS", "ALL FAST: 0900 HRS", "NOR TENDERED"},
		},
		{
			name: "empty",
			text: "   \n\n  ",
			want: []string{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := splitSentences(c.text)
			if len(got) != len(c.want) {
				t.Fatalf("got %d sentences %v, want %d", len(got), got, len(c.want))
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestHasOperationIndicator(t *testing.T) {
	if !hasOperationIndicator("cargo operations suspended due to rain") {
		t.Error("suspended not recognized")
	}
	if hasOperationIndicator("vessel alongside berth 4") {
		t.Error("static sentence passed the gate")
	}
}

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		lower     string
		eventType string
		title     string
	}{
		{"vessel arrived and operations commenced", "arrival", "Arrival"},
		{"loading completed ahead of schedule", "cargo", "Cargo"},
		{"discharging suspended due to swell", "cargo", "Cargo"},
		{"pilot embarked, passage commenced", "pilot", "Pilot"},
		{"work stopped, heavy rain over the terminal", "weather", "Weather"},
	}
	for _, c := range cases {
		eventType, title, ok := classifyKeywords(c.lower)
		if !ok {
			t.Errorf("classifyKeywords(%q) found nothing", c.lower)
			continue
		}
		if eventType != c.eventType || title != c.title {
			t.Errorf("classifyKeywords(%q) = (%s, %s), want (%s, %s)",
				c.lower, eventType, title, c.eventType, c.title)
		}
	}

	if _, _, ok := classifyKeywords("crew change completed at the gangway"); ok {
		t.Error("sentence without maritime keywords should not classify")
	}
}

func TestClassifyKeywordsPriority(t *testing.T) {
	// Arrival outranks every later tier even when their keywords are
	// also present.
	eventType, _, ok := classifyKeywords("vessel arrived and pilot boarded, loading started")
	if !ok || eventType != "arrival" {
		t.Errorf("eventType = %q, want arrival", eventType)
	}
}

func TestSentenceEvent(t *testing.T) {
	ev := sentenceEvent("cargo", "Cargo", "Loading suspended at 14:00", fallbackConfidence)
	if ev.EventName != "NLP Detected Cargo" {
		t.Errorf("name = %q", ev.EventName)
	}
	if ev.Confidence != 0.70 {
		t.Errorf("confidence = %v, want 0.70", ev.Confidence)
	}
	if ev.StartTime != "" || ev.Location != "" {
		t.Errorf("sentence events carry no time or location: %+v", ev)
	}
	if ev.ExtractionMethod != "nlp_context" {
		t.Errorf("method = %q", ev.ExtractionMethod)
	}
	if ev.Remarks != "Loading suspended at 14:00" {
		t.Errorf("remarks = %q", ev.Remarks)
	}
}

func TestNewEngineMissingAssets(t *testing.T) {
	if _, err := NewEngine(Config{}); err == nil {
		t.Error("expected error for empty model dir")
	}
	if _, err := NewEngine(Config{ModelDir: t.TempDir()}); err == nil {
		t.Error("expected error for missing tokenizer")
	}
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{2.0, 1.0, 0.1})
	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v", sum)
	}
	if !(probs[0] > probs[1] && probs[1] > probs[2]) {
		t.Errorf("ordering not preserved: %v", probs)
	}

	if softmax(nil) != nil {
		t.Error("empty input should return nil")
	}
}

func TestTitleCase(t *testing.T) {
	if got := titleCase("arrival"); got != "Arrival" {
		t.Errorf("titleCase = %q", got)
	}
	if got := titleCase(""); got != "" {
		t.Errorf("titleCase(\"\") = %q", got)
	}
}
