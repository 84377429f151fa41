// internal/feedback/vector.go
//
// Feedback codes and vectors.
// Defines:
//   - Code: per-position match category 0..5.
//   - Vector: one Code per position, the equivalence key for filtering.
//   - Index/VectorFromIndex: base-6 packing into 0..NumVectors-1.
//   - ParseVector: the 4-digit textual form used at the human boundary.

package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// Code is the feedback for a single position.
type Code uint8

const (
	Absent     Code = 0 // no relation
	SameRow    Code = 1 // same row (行) as the answer kana
	SameColumn Code = 2 // same column (段) as the answer kana
	Present    Code = 3 // kana occurs elsewhere in the answer
	Exact      Code = 4 // correct kana, correct position
	Variant    Code = 5 // voicing/size variant of the answer kana in this position
)

// NumCodes is the number of distinct codes.
const NumCodes = 6

// NumVectors is the number of distinct vectors for WordLen positions (6^4).
const NumVectors = 1296

// ErrMalformedFeedback is returned by ParseVector for bad textual feedback.
var ErrMalformedFeedback = errors.New("malformed feedback")

// Vector is the ordered feedback for a whole word.
type Vector [WordLen]Code

// Solved is the all-exact vector.
var Solved = Vector{Exact, Exact, Exact, Exact}

// Index packs v as Σ code_i·6^i.
func (v Vector) Index() int {
	idx, mul := 0, 1
	for _, c := range v {
		idx += int(c) * mul
		mul *= NumCodes
	}
	return idx
}

// VectorFromIndex is the inverse of Index.
func VectorFromIndex(idx int) Vector {
	var v Vector
	for i := range v {
		v[i] = Code(idx % NumCodes)
		idx /= NumCodes
	}
	return v
}

// IsSolved reports whether every position is Exact.
func (v Vector) IsSolved() bool { return v == Solved }

func (v Vector) String() string {
	var b strings.Builder
	for _, c := range v {
		b.WriteByte('0' + byte(c))
	}
	return b.String()
}

// ParseVector parses exactly WordLen digits, each 0..5.
func ParseVector(s string) (Vector, error) {
	var v Vector
	s = strings.TrimSpace(s)
	if len(s) != WordLen {
		return v, fmt.Errorf("%w: %q: want %d digits", ErrMalformedFeedback, s, WordLen)
	}
	for i := 0; i < WordLen; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Vector{}, fmt.Errorf("%w: %q: position %d is not a digit", ErrMalformedFeedback, s, i+1)
		}
		if c > '0'+NumCodes-1 {
			return Vector{}, fmt.Errorf("%w: %q: digit %c out of range 0-5", ErrMalformedFeedback, s, c)
		}
		v[i] = Code(c - '0')
	}
	return v, nil
}

func (v Vector) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Vector) UnmarshalText(b []byte) error {
	parsed, err := ParseVector(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
