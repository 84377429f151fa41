package daily

import (
	"context"
	"database/sql"
)

// Result is one finished daily game.
type Result struct {
	GameID    string `json:"gameId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Guesses   int    `json:"guesses"`
	Won       bool   `json:"won"`
}

// Summary aggregates the results recorded for one date.
type Summary struct {
	Date       string  `json:"date"`
	Played     int     `json:"played"`
	Won        int     `json:"won"`
	AvgGuesses float64 `json:"avgGuesses"`
}

const (
	insertResult = `INSERT OR IGNORE INTO daily_results(game_id, date, word_index, guesses, won)
VALUES(?,?,?,?,?)`
	summarize = `SELECT COUNT(1), COALESCE(SUM(won), 0), COALESCE(AVG(CASE WHEN won THEN guesses END), 0)
FROM daily_results
WHERE date=?`
)

// Store records daily results in SQLite.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records r once; repeated inserts for the same game are ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, insertResult, r.GameID, r.Date, r.WordIndex, r.Guesses, r.Won)
	return err
}

// Summarize returns the played/won counts and mean winning guess count for date.
func (s *Store) Summarize(ctx context.Context, date string) (Summary, error) {
	sum := Summary{Date: date}
	err := s.db.QueryRowContext(ctx, summarize, date).Scan(&sum.Played, &sum.Won, &sum.AvgGuesses)
	return sum, err
}
