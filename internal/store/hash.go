package store

import (
	"crypto/sha256"
	"fmt"
)

// HashDocumentContent computes SHA-256 of the extracted text for
// deduplication. The hash covers content only, so the same document
// uploaded under two filenames is still recognized as a duplicate.
func HashDocumentContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h)
}
