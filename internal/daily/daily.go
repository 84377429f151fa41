// internal/daily/daily.go
//
// Deterministic daily answer: every server with the same salt and dictionary
// picks the same word for a given UTC date.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Answer returns the day's word and its dictionary index.
func Answer(dict *words.Dictionary, date time.Time, salt string) (feedback.Word, int) {
	idx := WordIndex(date, salt, dict.Len())
	return dict.At(idx), idx
}
