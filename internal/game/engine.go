// internal/game/engine.go
//
// Core game engine for a single practice session against a hidden kana word.
// Responsibilities:
//   - Create new games with a random or given answer from the dictionary.
//   - Validate and apply guesses (four symbols, allowed list).
//   - Score guesses with the shared feedback scorer.
//   - Track state transitions: playing → won/lost.

package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/store"
	"github.com/robalobadob/kanadle/internal/words"
)

// DefaultRows is the number of guesses allowed when none is configured.
const DefaultRows = 6

var (
	ErrFinished  = errors.New("game finished")
	ErrNotInList = errors.New("not in word list")
)

// New constructs a new game. If answer is empty, a random dictionary word is
// chosen; a non-empty answer must be a dictionary word. rows <= 0 means DefaultRows.
func New(dict *words.Dictionary, scorer feedback.Scorer, answer string, rows int) (*Game, error) {
	var ans feedback.Word
	if answer == "" {
		ans = dict.At(rand.Intn(dict.Len()))
	} else {
		w, err := feedback.ParseWord(strings.TrimSpace(answer))
		if err != nil {
			return nil, err
		}
		if !dict.Contains(w) {
			return nil, fmt.Errorf("answer %s: %w", w, ErrNotInList)
		}
		ans = w
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Game{
		ID:      store.NewID(),
		Answer:  ans,
		Rows:    rows,
		Guesses: []Row{},
		dict:    dict,
		scorer:  scorer,
	}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the feedback vector, the new state, or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly four symbols.
//   - Guess must be present in the dictionary.
//
// State transitions:
//   - Solved feedback → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (feedback.Vector, State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Finished {
		return feedback.Vector{}, g.state(), ErrFinished
	}
	w, err := feedback.ParseWord(strings.TrimSpace(guess))
	if err != nil {
		return feedback.Vector{}, g.state(), err
	}
	if !g.dict.Contains(w) {
		return feedback.Vector{}, g.state(), ErrNotInList
	}

	v := g.scorer.Feedback(w, g.Answer)
	g.Guesses = append(g.Guesses, Row{Guess: w, Feedback: v})

	if v.IsSolved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return v, g.state(), nil
}

func (g *Game) state() State {
	if g.Finished {
		if g.Won {
			return Won
		}
		return Lost
	}
	return Playing
}
