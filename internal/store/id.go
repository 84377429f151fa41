package store

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a compact 16-hex-char identifier for sessions and games.
func NewID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
