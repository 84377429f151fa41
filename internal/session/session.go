// internal/session/session.go
//
// One interactive solve: the candidate pool, the round counter and the
// history of (guess, feedback) turns.
//
// Round 1 recommends the opening guess when one is known, otherwise every
// round asks the selector. A session ends solved when a single candidate
// remains, or inconsistent when none do; both are terminal.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robalobadob/kanadle/internal/candidates"
	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/solver"
	"github.com/robalobadob/kanadle/internal/words"
)

var (
	// ErrUnknownGuess is returned by Apply for guesses outside the dictionary.
	ErrUnknownGuess = errors.New("guess is not in the dictionary")
	// ErrFinished is returned by Apply once the session is solved or inconsistent.
	ErrFinished = errors.New("session finished")
)

// State is the coarse session status.
type State string

const (
	Solving      State = "solving"
	Solved       State = "solved"
	Inconsistent State = "inconsistent"
)

// Turn is one applied guess.
type Turn struct {
	Round     int             `json:"round"`
	Guess     feedback.Word   `json:"guess"`
	Feedback  feedback.Vector `json:"feedback"`
	Removed   int             `json:"removed"`
	Remaining int             `json:"remaining"`
	FellBack  bool            `json:"fellBack,omitempty"`
}

// Setup holds what every session over one dictionary shares.
type Setup struct {
	Scorer     feedback.Scorer
	Dictionary *words.Dictionary
	Selector   *solver.Selector
	// Opening is the precomputed round-1 guess; nil means compute on demand.
	Opening *solver.Result
}

// New starts a session whose pool is the whole dictionary.
func (s *Setup) New(id string) *Session {
	sess := &Session{
		ID:      id,
		setup:   s,
		pool:    candidates.New(s.Scorer, s.Dictionary.Words()),
		round:   1,
		state:   Solving,
		history: []Turn{},
	}
	if sess.pool.Len() == 1 {
		sess.state = Solved
	}
	return sess
}

// Session is safe for concurrent use.
type Session struct {
	ID string

	mu      sync.Mutex
	setup   *Setup
	pool    *candidates.Pool
	round   int
	state   State
	history []Turn
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID         string          `json:"id"`
	Round      int             `json:"round"`
	State      State           `json:"state"`
	Candidates []feedback.Word `json:"-"`
	History    []Turn          `json:"history"`
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.ID,
		Round:      s.round,
		State:      s.state,
		Candidates: append([]feedback.Word(nil), s.pool.Words()...),
		History:    append([]Turn(nil), s.history...),
	}
}

// Solution returns the answer once the session is solved.
func (s *Session) Solution() (feedback.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pool.Solution()
}

// Recommend returns the suggested guess for the current round.
func (s *Session) Recommend(ctx context.Context) (solver.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recommend(ctx)
}

func (s *Session) recommend(ctx context.Context) (solver.Result, error) {
	if s.round == 1 && s.setup.Opening != nil {
		return *s.setup.Opening, nil
	}
	return s.setup.Selector.Recommend(ctx, s.pool.Words())
}

// Split is the partition guess would induce on the current candidates.
func (s *Session) Split(guess feedback.Word) solver.Partition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setup.Selector.Partition(guess, s.pool.Words())
}

// Apply narrows the pool by (guess, observed) and advances the round.
//
// A guess outside the dictionary is rejected with ErrUnknownGuess, unless
// fallback is set, in which case the current recommendation is applied in its
// place. Reaching zero candidates is not an error: the returned turn reports
// zero remaining and the session becomes Inconsistent.
func (s *Session) Apply(ctx context.Context, guess feedback.Word, observed feedback.Vector, fallback bool) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Solving {
		return Turn{}, ErrFinished
	}

	t := Turn{Round: s.round, Guess: guess, Feedback: observed}
	if !s.setup.Dictionary.Contains(guess) {
		if !fallback {
			return Turn{}, fmt.Errorf("%w: %s", ErrUnknownGuess, guess)
		}
		rec, err := s.recommend(ctx)
		if err != nil {
			return Turn{}, err
		}
		t.Guess, t.FellBack = rec.Guess, true
	}

	removed, err := s.pool.Narrow(t.Guess, observed)
	switch {
	case errors.Is(err, candidates.ErrNoCandidates):
		s.state = Inconsistent
	case err != nil:
		return Turn{}, err
	case s.pool.Len() == 1:
		s.state = Solved
	}

	t.Removed, t.Remaining = removed, s.pool.Len()
	s.history = append(s.history, t)
	s.round++
	return t, nil
}
