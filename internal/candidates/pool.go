// internal/candidates/pool.go
//
// Candidate pool: the words still consistent with every (guess, feedback)
// pair observed so far.
// Responsibilities:
//   - Filter: stable, order-preserving selection by observed feedback.
//   - Pool: owns the working slice across rounds; only ever shrinks.
//
// An empty pool is a valid outcome. It means the feedback history was
// contradictory or the answer is not in the dictionary, and is surfaced as
// ErrNoCandidates rather than hidden.
package candidates

import (
	"errors"

	"github.com/robalobadob/kanadle/internal/feedback"
)

// ErrNoCandidates signals that no dictionary word fits the feedback history.
var ErrNoCandidates = errors.New("no remaining candidates")

// Filter returns, in original order, every w in pool with scorer.Feedback(guess, w) == observed.
// The input slice is never modified.
func Filter(scorer feedback.Scorer, guess feedback.Word, observed feedback.Vector, pool []feedback.Word) []feedback.Word {
	out := make([]feedback.Word, 0, len(pool))
	for _, w := range pool {
		if scorer.Feedback(guess, w) == observed {
			out = append(out, w)
		}
	}
	return out
}

// Pool is the working candidate set for one solve.
type Pool struct {
	scorer feedback.Scorer
	words  []feedback.Word
}

// New starts a pool equal to dictionary. The dictionary slice is referenced, not copied;
// narrowing always allocates a fresh slice.
func New(scorer feedback.Scorer, dictionary []feedback.Word) *Pool {
	return &Pool{scorer: scorer, words: dictionary}
}

// Words returns the current candidates. Callers must not modify the slice.
func (p *Pool) Words() []feedback.Word { return p.words }

// Len is the number of remaining candidates.
func (p *Pool) Len() int { return len(p.words) }

// Solution returns the only remaining candidate, if exactly one is left.
func (p *Pool) Solution() (feedback.Word, bool) {
	if len(p.words) != 1 {
		return feedback.Word{}, false
	}
	return p.words[0], true
}

// Narrow replaces the pool with Filter(guess, observed) and reports how many
// words were removed. ErrNoCandidates is returned when nothing survives; the
// pool is left empty in that case.
func (p *Pool) Narrow(guess feedback.Word, observed feedback.Vector) (removed int, err error) {
	before := len(p.words)
	p.words = Filter(p.scorer, guess, observed, p.words)
	removed = before - len(p.words)
	if len(p.words) == 0 {
		return removed, ErrNoCandidates
	}
	return removed, nil
}
