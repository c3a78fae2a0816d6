// Package contenthash derives the dedup key for quote content.
package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Func computes a content digest. Stores take one so tests can substitute it.
type Func func(content string) string

// Hash returns the lowercase hex sha256 of content with surrounding
// whitespace trimmed. Any string is valid input, including "".
func Hash(content string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(content)))
	return hex.EncodeToString(sum[:])
}
