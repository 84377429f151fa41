package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/kanadle/internal/config"
	"github.com/robalobadob/kanadle/internal/db"
	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/openings"
	"github.com/robalobadob/kanadle/internal/session"
	"github.com/robalobadob/kanadle/internal/solver"
	"github.com/robalobadob/kanadle/internal/words"
)

// runtime is everything a command needs, built from a resolved Config.
type runtime struct {
	cfg      *config.Config
	dict     *words.Dictionary
	freq     words.Frequencies
	engine   *feedback.Engine
	selector *solver.Selector
	openings openings.Store
	sql      *sql.DB // nil without a database
}

func newRuntime(cfg *config.Config) (*runtime, error) {
	dict, err := words.Load(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	if dict.Skipped() > 0 {
		log.Warn().Int("skipped", dict.Skipped()).Msg("dictionary entries without four symbols were skipped")
	}
	if dict.Unclassified() > 0 {
		log.Warn().Int("words", dict.Unclassified()).Msg("dictionary words use kana without row or column")
	}
	freq, err := words.LoadFrequencies(cfg.Frequencies)
	if err != nil {
		return nil, err
	}
	cache, err := cfg.FeedbackCache()
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, dict: dict, freq: freq, engine: feedback.NewEngine(cache)}
	rt.selector = solver.New(rt.engine, dict.Words(), rt.selectorOptions()...)

	rt.openings = openings.NewMemoryStore()
	if path := cfg.DatabasePath(); path != "" {
		conn, err := db.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(conn); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		rt.sql = conn
		rt.openings = openings.NewSQLStore(conn)
	}

	log.Debug().
		Int("words", dict.Len()).
		Int("frequencies", freq.Coverage(dict.Words())).
		Str("key", dict.Key()).
		Msg("dictionary loaded")
	return rt, nil
}

func (rt *runtime) selectorOptions(extra ...solver.Option) []solver.Option {
	opts := append(rt.cfg.SelectorOptions(), solver.WithLogger(log.Logger))
	return append(opts, extra...)
}

func (rt *runtime) Close() error {
	if rt.sql != nil {
		return rt.sql.Close()
	}
	return nil
}

// opening loads or computes the opening guess. When progress is non-nil a
// progress bar over the dictionary is drawn on it.
func (rt *runtime) opening(ctx context.Context, force bool, progress io.Writer) (openings.Entry, bool, error) {
	pc := rt.selector
	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(rt.dict.Len(),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("opening"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		pc = solver.New(rt.engine, rt.dict.Words(), rt.selectorOptions(
			solver.WithProgress(func(int, int) { _ = bar.Add(1) }),
		)...)
	}
	e, cached, err := openings.Resolve(ctx, rt.openings, rt.dict.Key(), rt.dict.Len(), pc, force)
	if bar != nil {
		_ = bar.Finish()
	}
	return e, cached, err
}

// setup is the shared session setup with the resolved opening.
func (rt *runtime) setup(opening *solver.Result) *session.Setup {
	return &session.Setup{
		Scorer:     rt.engine,
		Dictionary: rt.dict,
		Selector:   rt.selector,
		Opening:    opening,
	}
}
