package utils

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// ShareKeyLength is the fixed length of every journal share key.
const ShareKeyLength = 8

const shareKeyAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var shareKeyRegex = regexp.MustCompile(`^[A-Z0-9]+$`)

// GenerateShareKey returns a random 8-character uppercase base-36 key.
// Generated keys are not checked for collisions up front; the store's
// unique constraint is the backstop and surfaces a conflict instead.
func GenerateShareKey() string {
	var b strings.Builder
	b.Grow(ShareKeyLength)
	for i := 0; i < ShareKeyLength; i++ {
		b.WriteByte(shareKeyAlphabet[rand.IntN(len(shareKeyAlphabet))])
	}
	return b.String()
}

// ValidShareKey reports whether key has the mandatory share-key shape.
// Only the length is enforced at the API boundary.
func ValidShareKey(key string) bool {
	return len(key) == ShareKeyLength
}

// ValidShareKeyStrict additionally requires uppercase alphanumerics.
func ValidShareKeyStrict(key string) bool {
	return ValidShareKey(key) && shareKeyRegex.MatchString(key)
}
