// internal/feedback/word.go
//
// Word is the fixed-length unit every guess and answer is made of.
// Words are comparable arrays so they can key maps and caches directly.

package feedback

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
)

// WordLen is the number of kana in every dictionary word.
const WordLen = 4

// ErrMalformedWord is returned when a string is not exactly WordLen symbols.
var ErrMalformedWord = errors.New("malformed word")

// Word is an ordered sequence of WordLen kana.
type Word [WordLen]rune

// ParseWord converts s (surrounding whitespace trimmed) into a Word.
func ParseWord(s string) (Word, error) {
	var w Word
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n != WordLen {
		return w, fmt.Errorf("%w: %q has %d symbols, want %d", ErrMalformedWord, s, n, WordLen)
	}
	i := 0
	for _, r := range s {
		if r == utf8.RuneError {
			return Word{}, fmt.Errorf("%w: %q is not valid UTF-8", ErrMalformedWord, s)
		}
		w[i] = r
		i++
	}
	return w, nil
}

// MustWord is ParseWord for literals; it panics on malformed input.
func MustWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// Words parses every entry of list, failing on the first malformed one.
func Words(list ...string) ([]Word, error) {
	out := make([]Word, 0, len(list))
	for _, s := range list {
		w, err := ParseWord(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (w Word) String() string { return string(w[:]) }

// MarshalText encodes the word as its UTF-8 string.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses a UTF-8 word.
func (w *Word) UnmarshalText(b []byte) error {
	parsed, err := ParseWord(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Strings renders ws as plain strings.
func Strings(ws []Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

// Digest identifies an ordered word sequence.
type Digest [blake2b.Size256]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Fingerprint hashes ws in order with BLAKE2b-256.
func Fingerprint(ws []Word) Digest {
	h, _ := blake2b.New256(nil)
	var buf [WordLen * 4]byte
	for _, w := range ws {
		for i, r := range w {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(r))
		}
		_, _ = h.Write(buf[:])
	}
	var d Digest
	h.Sum(d[:0])
	return d
}
