// internal/game/types.go
//
// Core type definitions for the practice game.
// Defines:
//   - State: playing, won or lost.
//   - Game: state for a single in-progress or finished game.

package game

import (
	"sync"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/words"
)

// State is the coarse game status reported to clients.
type State string

const (
	Playing State = "playing"
	Won     State = "won"
	Lost    State = "lost"
)

// Row is one scored guess.
type Row struct {
	Guess    feedback.Word   `json:"guess"`
	Feedback feedback.Vector `json:"feedback"`
}

// Game holds the state of a single practice game.
type Game struct {
	ID       string        // Unique game identifier (random hex string).
	Answer   feedback.Word // The hidden solution.
	Rows     int           // Maximum number of guesses allowed (typically 6).
	Guesses  []Row         // Guesses made so far with their feedback.
	Finished bool          // True once the game is over (won or lost).
	Won      bool          // True if the game was finished with a win.

	mu     sync.Mutex
	dict   *words.Dictionary
	scorer feedback.Scorer
}
