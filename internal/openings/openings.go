// internal/openings/openings.go
//
// Persisted opening guess.
// The opening is the one search whose pool and domain are the whole dictionary,
// so it is quadratic in dictionary size and worth keeping across runs.
//
// Responsibilities:
//   - Store: keyed by dictionary fingerprint (words.Dictionary.Key).
//   - SQLStore (SQLite via internal/db) and MemoryStore implementations.
//   - Resolve: load, or compute and save. A broken or missing cache only costs
//     time; it is logged and never returned as an error.

package openings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/solver"
)

// ErrMiss is returned by Store.Get when nothing is cached for a key.
var ErrMiss = errors.New("openings: no cached opening")

// Entry is a cached opening for one dictionary.
type Entry struct {
	Key        string        `json:"key"`
	Result     solver.Result `json:"result"`
	Words      int           `json:"words"`
	ComputedAt time.Time     `json:"computedAt"`
}

// Store persists openings.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, e Entry) error
}

// Precomputer runs the full opening search.
type Precomputer interface {
	PrecomputeOpening(ctx context.Context) (solver.Result, error)
}

// Resolve returns the cached opening for key, computing and saving it when absent,
// stale (different word count) or when force is set. cached reports whether the
// result came from the store.
func Resolve(ctx context.Context, st Store, key string, words int, pc Precomputer, force bool) (e Entry, cached bool, err error) {
	if st != nil && !force {
		hit, gerr := st.Get(ctx, key)
		switch {
		case gerr == nil && hit.Words == words:
			log.Debug().Str("key", key).Str("guess", hit.Result.Guess.String()).Msg("opening loaded from cache")
			return hit, true, nil
		case gerr == nil:
			log.Warn().Str("key", key).Int("cached", hit.Words).Int("words", words).Msg("cached opening is stale")
		case !errors.Is(gerr, ErrMiss):
			log.Warn().Err(gerr).Str("key", key).Msg("opening cache unreadable, recomputing")
		}
	}

	res, err := pc.PrecomputeOpening(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	e = Entry{Key: key, Result: res, Words: words, ComputedAt: time.Now().UTC()}
	if st != nil {
		if err := st.Put(ctx, e); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("could not save opening")
		}
	}
	return e, false, nil
}

// ----------------------------- SQLite store --------------------------------

const (
	selectOpening = `SELECT guess, bits, words, computed_at FROM openings WHERE dictionary_key=?`
	upsertOpening = `INSERT INTO openings (dictionary_key, guess, bits, words, computed_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(dictionary_key) DO UPDATE SET
            guess=excluded.guess, bits=excluded.bits,
            words=excluded.words, computed_at=excluded.computed_at`
)

// SQLStore keeps openings in the openings table.
type SQLStore struct{ db *sql.DB }

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, key string) (Entry, error) {
	var (
		guess, computed string
		e               = Entry{Key: key}
	)
	err := s.db.QueryRowContext(ctx, selectOpening, key).Scan(&guess, &e.Result.Bits, &e.Words, &computed)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, err
	}
	if e.Result.Guess, err = feedback.ParseWord(guess); err != nil {
		return Entry{}, fmt.Errorf("openings: stored guess: %w", err)
	}
	if e.ComputedAt, err = time.Parse(time.RFC3339, computed); err != nil {
		return Entry{}, fmt.Errorf("openings: stored timestamp: %w", err)
	}
	return e, nil
}

func (s *SQLStore) Put(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, upsertOpening,
		e.Key, e.Result.Guess.String(), e.Result.Bits, e.Words, e.ComputedAt.UTC().Format(time.RFC3339))
	return err
}

// ----------------------------- memory store --------------------------------

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{entries: make(map[string]Entry)} }

func (m *MemoryStore) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[key]; ok {
		return e, nil
	}
	return Entry{}, ErrMiss
}

func (m *MemoryStore) Put(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Key] = e
	return nil
}
