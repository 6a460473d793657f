package nlp

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide
// singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// textcatSession wraps an inference session over a BERT-style sequence
// classification model exporting [batch, numLabels] logits.
type textcatSession struct {
	session    *ort.DynamicAdvancedSession
	inputNames []string
	outputName string
	numLabels  int64
	labels     []string
}

// newTextcatSession loads the classification model and its label file.
// The ONNX Runtime shared library is shipped alongside the model.
func newTextcatSession(modelPath string) (*textcatSession, error) {
	modelDir := filepath.Dir(modelPath)

	labels, err := loadLabels(filepath.Join(modelDir, "labels.txt"))
	if err != nil {
		return nil, err
	}

	if err := initORT(filepath.Join(modelDir, "libonnxruntime.so")); err != nil {
		return nil, fmt.Errorf("nlp: failed to initialize onnx runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("nlp: failed to read model info: %w", err)
	}

	inputNames, err := validateInputs(inputs)
	if err != nil {
		return nil, err
	}

	if len(outputs) == 0 {
		return nil, fmt.Errorf("nlp: model has no outputs")
	}
	outputName := outputs[0].Name
	dims := outputs[0].Dimensions
	if len(dims) != 2 {
		return nil, fmt.Errorf("nlp: expected [batch, labels] logits, got %v", dims)
	}
	numLabels := dims[1]
	if numLabels != int64(len(labels)) {
		return nil, fmt.Errorf("nlp: model emits %d labels but labels.txt lists %d", numLabels, len(labels))
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("nlp: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(2)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputName}, opts)
	if err != nil {
		return nil, fmt.Errorf("nlp: failed to create session: %w", err)
	}

	return &textcatSession{
		session:    session,
		inputNames: inputNames,
		outputName: outputName,
		numLabels:  numLabels,
		labels:     labels,
	}, nil
}

func validateInputs(inputs []ort.InputOutputInfo) ([]string, error) {
	nameSet := make(map[string]bool, len(inputs))
	for _, inp := range inputs {
		nameSet[inp.Name] = true
	}
	required := []string{"input_ids", "attention_mask", "token_type_ids"}
	for _, name := range required {
		if !nameSet[name] {
			return nil, fmt.Errorf("nlp: model missing required input %q", name)
		}
	}
	return required, nil
}

// classify runs single-sentence inference and returns the best label
// with its softmax probability.
func (s *textcatSession) classify(inputIDs, attentionMask, tokenTypeIDs []int64) (string, float64, error) {
	shape := ort.NewShape(1, maxSeqLen)

	tIDs, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return "", 0, fmt.Errorf("nlp: failed to create input_ids tensor: %w", err)
	}
	defer tIDs.Destroy()

	tMask, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return "", 0, fmt.Errorf("nlp: failed to create attention_mask tensor: %w", err)
	}
	defer tMask.Destroy()

	tTypes, err := ort.NewTensor(shape, tokenTypeIDs)
	if err != nil {
		return "", 0, fmt.Errorf("nlp: failed to create token_type_ids tensor: %w", err)
	}
	defer tTypes.Destroy()

	tOut, err := ort.NewEmptyTensor[float32](ort.NewShape(1, s.numLabels))
	if err != nil {
		return "", 0, fmt.Errorf("nlp: failed to create output tensor: %w", err)
	}
	defer tOut.Destroy()

	err = s.session.Run([]ort.Value{tIDs, tMask, tTypes}, []ort.Value{tOut})
	if err != nil {
		return "", 0, fmt.Errorf("nlp: inference failed: %w", err)
	}

	probs := softmax(tOut.GetData())
	best, bestProb := 0, 0.0
	for i, p := range probs {
		if p > bestProb {
			best, bestProb = i, p
		}
	}
	return s.labels[best], bestProb, nil
}

func (s *textcatSession) close() error {
	return s.session.Destroy()
}

func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	out := make([]float64, len(logits))
	var sum float64
	for i, l := range logits {
		out[i] = math.Exp(float64(l - max))
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// loadLabels reads one label per line, skipping blanks and comments.
func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nlp: failed to open label file: %w", err)
	}
	defer f.Close()

	var labels []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("nlp: failed to read label file: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("nlp: label file %s is empty", path)
	}
	return labels, nil
}
