package nlp

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// maxSeqLen is the fixed sequence length fed to the text classifier.
// Sentences are truncated or padded to exactly this many positions.
const maxSeqLen = 128

// textTokenizer wraps a WordPiece tokenizer loaded from a HuggingFace
// tokenizer.json export.
type textTokenizer struct {
	tk *tokenizer.Tokenizer
}

func loadTokenizer(path string) (*textTokenizer, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("nlp: failed to load tokenizer %s: %w", path, err)
	}
	return &textTokenizer{tk: tk}, nil
}

// encode tokenizes one sentence into fixed-length int64 slices ready
// for ONNX inference.
func (t *textTokenizer) encode(text string) (inputIDs, attentionMask, tokenTypeIDs []int64, err error) {
	enc, err := t.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("nlp: tokenization failed: %w", err)
	}

	inputIDs = make([]int64, maxSeqLen)
	attentionMask = make([]int64, maxSeqLen)
	tokenTypeIDs = make([]int64, maxSeqLen)

	n := len(enc.Ids)
	if n > maxSeqLen {
		n = maxSeqLen
	}
	for i := 0; i < n; i++ {
		inputIDs[i] = int64(enc.Ids[i])
		attentionMask[i] = 1
		if i < len(enc.TypeIds) {
			tokenTypeIDs[i] = int64(enc.TypeIds[i])
		}
	}
	return inputIDs, attentionMask, tokenTypeIDs, nil
}
