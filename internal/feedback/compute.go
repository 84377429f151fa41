// internal/feedback/compute.go
//
// Compute implements the four-pass kana scoring.
//
// Pass 1 (exact):    guess[i] == answer[i] → Exact; consumes one answer occurrence.
// Pass 2 (variant):  same base, different kana in place → Variant; consumes nothing.
// Pass 3 (present):  remaining answer occurrence of guess[i] → Present; consumes it.
// Pass 4 (affinity): same row → SameRow, else same column → SameColumn, else Absent.
//
// The occurrence counts come from the answer only and are consumed in guess
// order, so Compute(g, a) and Compute(a, g) differ in general.

package feedback

import "github.com/robalobadob/kanadle/internal/kana"

// Scorer computes the feedback a guess receives against an answer.
type Scorer interface {
	Feedback(guess, answer Word) Vector
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(guess, answer Word) Vector

func (f ScorerFunc) Feedback(guess, answer Word) Vector { return f(guess, answer) }

// Pure is an uncached Scorer.
var Pure Scorer = ScorerFunc(Compute)

// Compute returns the feedback vector for guess against answer.
func Compute(guess, answer Word) Vector {
	var (
		out      Vector
		resolved [WordLen]bool
	)

	// Answer occurrences; WordLen is tiny so a slice scan beats a map.
	var (
		sym   [WordLen]rune
		count [WordLen]int
		n     int
	)
	slot := func(r rune) int {
		for j := 0; j < n; j++ {
			if sym[j] == r {
				return j
			}
		}
		return -1
	}
	for _, r := range answer {
		if j := slot(r); j >= 0 {
			count[j]++
			continue
		}
		sym[n], count[n] = r, 1
		n++
	}

	for i := range guess {
		if guess[i] == answer[i] {
			out[i], resolved[i] = Exact, true
			count[slot(answer[i])]--
		}
	}

	for i := range guess {
		if !resolved[i] && kana.IsVariant(guess[i], answer[i]) {
			out[i], resolved[i] = Variant, true
		}
	}

	for i := range guess {
		if resolved[i] {
			continue
		}
		if j := slot(guess[i]); j >= 0 && count[j] > 0 {
			out[i], resolved[i] = Present, true
			count[j]--
		}
	}

	for i := range guess {
		if resolved[i] {
			continue
		}
		switch {
		case kana.SameRow(guess[i], answer[i]):
			out[i] = SameRow
		case kana.SameColumn(guess[i], answer[i]):
			out[i] = SameColumn
		default:
			out[i] = Absent
		}
	}
	return out
}
