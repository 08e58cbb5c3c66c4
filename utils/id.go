package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a 24-char lowercase hex identifier (12 random bytes), the id
// format used for both users and daily intake records.
func NewID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}
