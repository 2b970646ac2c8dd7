package artwork

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentHash returns the hex sha256 of raw image bytes. It is the identity
// used by the duplicate gate: same bytes, same hash, one artwork.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// PromptFingerprint normalizes a generation prompt and returns its hex sha256.
// Normalization is lowercase, trimmed, with interior whitespace runs collapsed
// to single spaces, so cosmetic edits map to the same fingerprint.
func PromptFingerprint(prompt string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
