package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// PDFExtractor extracts text from PDF files via pdftotext. Scanned
// PDFs with no text layer degrade to an OCR sentinel rather than an
// error.
type PDFExtractor struct{}

func (p *PDFExtractor) CanHandle(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".pdf"
}

func (p *PDFExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return SentinelOCRUnavailable + ": pdftotext is not installed; " +
			"install poppler-utils to process PDF documents", nil
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return fmt.Sprintf("%s: pdftotext failed: %v: %s",
			SentinelOCRError, err, strings.TrimSpace(stderr.String())), nil
	}

	text := stdout.String()
	if strings.TrimSpace(text) == "" {
		// No text layer. Image-based PDF that would need OCR.
		return SentinelOCRFailed + ": no text layer found; the document appears " +
			"to be image-based and requires OCR processing", nil
	}
	return text, nil
}
