package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// DocxExtractor reads the main document part of a DOCX archive
// directly. Paragraph boundaries become newlines.
type DocxExtractor struct{}

func (d *DocxExtractor) CanHandle(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".docx"
}

func (d *DocxExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening document part: %w", err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return "", fmt.Errorf("docx archive has no word/document.xml")
}

// parseDocumentXML walks WordprocessingML, collecting text runs and
// inserting a newline at each paragraph end.
func parseDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return "", fmt.Errorf("decoding text run: %w", err)
				}
				b.WriteString(text)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}

// DocExtractor handles legacy .doc files through a converter cascade:
// antiword first, catdoc as fallback.
type DocExtractor struct{}

func (d *DocExtractor) CanHandle(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".doc"
}

func (d *DocExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	var lastErr error
	for _, tool := range []string{"antiword", "catdoc"} {
		if _, err := exec.LookPath(tool); err != nil {
			lastErr = err
			continue
		}

		var stdout bytes.Buffer
		cmd := exec.CommandContext(ctx, tool, path)
		cmd.Stdout = &stdout
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}
		if strings.TrimSpace(stdout.String()) != "" {
			return stdout.String(), nil
		}
	}

	return fmt.Sprintf("%s: no working .doc converter (antiword, catdoc): %v",
		SentinelOCRUnavailable, lastErr), nil
}
