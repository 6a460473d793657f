package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PlainTextExtractor reads .txt files. Non-UTF-8 bytes are replaced
// rather than rejected; port agents export from a wide range of legacy
// systems.
type PlainTextExtractor struct{}

func (p *PlainTextExtractor) CanHandle(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".txt"
}

func (p *PlainTextExtractor) ExtractText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}
