// Package ingest turns uploaded SoF documents into plain text.
//
// Each supported format (PDF, DOCX, DOC, plain text) has its own
// extractor implementing the Extractor interface. The engine
// dispatches by file extension. PDF and DOC extraction shell out to
// the standard conversion tools (pdftotext, antiword, catdoc); when a
// scanned PDF yields no text the extractor returns an OCR sentinel
// string instead of failing, so the caller can record the document and
// report the degradation.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions lists the formats the dispatcher accepts.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

// OCR sentinel prefixes. Extractors return these as the document text
// when a scanned or broken file produces nothing usable; downstream
// stages treat the text as low-signal input rather than an error.
const (
	SentinelOCRUnavailable = "OCR_UNAVAILABLE"
	SentinelOCRFailed      = "OCR_FAILED"
	SentinelOCRError       = "OCR_ERROR"
)

// IsDegraded reports whether extracted text is an OCR sentinel rather
// than real document content.
func IsDegraded(text string) bool {
	for _, prefix := range []string{SentinelOCRUnavailable, SentinelOCRFailed, SentinelOCRError} {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// Extractor converts one document format into plain text.
type Extractor interface {
	CanHandle(path string) bool
	ExtractText(ctx context.Context, path string) (string, error)
}

// extractors is tried in order; the first CanHandle match wins.
var extractors = []Extractor{
	&PDFExtractor{},
	&DocxExtractor{},
	&DocExtractor{},
	&PlainTextExtractor{},
}

// ExtractText extracts plain text from a document, dispatching on the
// file extension.
func ExtractText(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return "", fmt.Errorf("unsupported file format: %s", ext)
	}

	for _, e := range extractors {
		if e.CanHandle(path) {
			return e.ExtractText(ctx, path)
		}
	}
	return "", fmt.Errorf("no extractor for %s", ext)
}

// Validation holds the result of pre-processing checks on an uploaded
// file.
type Validation struct {
	IsValid           bool   `json:"is_valid"`
	FileExists        bool   `json:"file_exists"`
	IsSupportedFormat bool   `json:"is_supported_format"`
	IsReadable        bool   `json:"is_readable"`
	HasTextContent    bool   `json:"has_text_content"`
	FileSize          int64  `json:"file_size"`
	ErrorMessage      string `json:"error_message,omitempty"`
}

// ValidateDocument checks whether a file is processable: it exists, has
// a supported extension, is readable, and yields more than 10 trimmed
// characters of text. Every failure is reported in the result, never as
// an error.
func ValidateDocument(ctx context.Context, path string) Validation {
	var v Validation

	fi, err := os.Stat(path)
	if err != nil {
		v.ErrorMessage = "File does not exist"
		return v
	}
	v.FileExists = true
	v.FileSize = fi.Size()

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		v.ErrorMessage = fmt.Sprintf("Unsupported format: %s", ext)
		return v
	}
	v.IsSupportedFormat = true

	f, err := os.Open(path)
	if err != nil {
		v.ErrorMessage = fmt.Sprintf("File is not readable: %v", err)
		return v
	}
	f.Close()
	v.IsReadable = true

	text, err := ExtractText(ctx, path)
	if err != nil {
		v.ErrorMessage = fmt.Sprintf("Text extraction failed: %v", err)
		return v
	}
	if len(strings.TrimSpace(text)) > 10 {
		v.HasTextContent = true
		v.IsValid = true
	} else {
		v.ErrorMessage = "No readable text content found"
	}
	return v
}
