package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprint returns the dedupe key for a content fragment. Whitespace
// is normalized first so the same content surfaced by both backends
// with different formatting still collapses to one citation.
func fingerprint(content string) string {
	normalized := strings.Join(strings.Fields(content), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
