package nlp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/portside/bollard/internal/extract"
)

// fallbackConfidence is the fixed confidence of keyword-classified
// sentence events. Deliberately below every catalog base confidence.
const fallbackConfidence = 0.70

// textcatThreshold is the minimum softmax probability for an ONNX
// classification to produce an event.
const textcatThreshold = 0.60

// Config locates the model assets.
type Config struct {
	// ModelDir holds tokenizer.json, model.onnx, labels.txt and the
	// onnxruntime shared library.
	ModelDir string
}

// Engine is the sentence-level fallback classifier. Construction fails
// when model assets are missing; callers treat that as "fallback
// disabled" rather than an error.
type Engine struct {
	tk      *textTokenizer
	textcat *textcatSession
}

// NewEngine loads the tokenizer and classification model from
// cfg.ModelDir.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.ModelDir == "" {
		return nil, fmt.Errorf("nlp: no model directory configured")
	}

	tokPath := filepath.Join(cfg.ModelDir, "tokenizer.json")
	if _, err := os.Stat(tokPath); err != nil {
		return nil, fmt.Errorf("nlp: tokenizer not found: %w", err)
	}
	tk, err := loadTokenizer(tokPath)
	if err != nil {
		return nil, err
	}

	textcat, err := newTextcatSession(filepath.Join(cfg.ModelDir, "model.onnx"))
	if err != nil {
		return nil, err
	}

	return &Engine{tk: tk, textcat: textcat}, nil
}

// Close releases the inference session.
func (e *Engine) Close() error {
	if e.textcat != nil {
		return e.textcat.close()
	}
	return nil
}

// SentenceEvents scans the document sentence by sentence and emits
// low-confidence events for operational sentences the pattern catalog
// may have missed. Keyword classification is authoritative; the ONNX
// classifier only sees sentences the keyword tables cannot place.
func (e *Engine) SentenceEvents(text string) []extract.Event {
	var events []extract.Event

	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		if !hasOperationIndicator(lower) {
			continue
		}

		if eventType, title, ok := classifyKeywords(lower); ok {
			events = append(events, sentenceEvent(eventType, title, sentence, fallbackConfidence))
			continue
		}

		ev, ok := e.classifySentence(sentence)
		if ok {
			events = append(events, ev)
		}
	}
	return events
}

// classifySentence offers one keyword-less sentence to the ONNX text
// classifier. Inference errors skip the sentence with a warning; they
// never abort the document.
func (e *Engine) classifySentence(sentence string) (extract.Event, bool) {
	ids, mask, typeIDs, err := e.tk.encode(sentence)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return extract.Event{}, false
	}

	label, prob, err := e.textcat.classify(ids, mask, typeIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return extract.Event{}, false
	}
	if prob < textcatThreshold {
		return extract.Event{}, false
	}

	return sentenceEvent(label, titleCase(label), sentence, prob), true
}

func sentenceEvent(eventType, title, sentence string, confidence float64) extract.Event {
	return extract.Event{
		EventType:        eventType,
		EventName:        "NLP Detected " + title,
		Confidence:       confidence,
		Remarks:          sentence,
		ExtractionMethod: extract.MethodNLPContext,
	}
}

func titleCase(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
