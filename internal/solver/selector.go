// internal/solver/selector.go
//
// Entropy search for the next guess.
// Responsibilities:
//   - Select: arg-max of expected information gain over a guess domain.
//   - Domain: the two-regime policy (pool itself when narrow, whole dictionary when wide).
//   - Recommend: Select over Domain(pool).
//   - PrecomputeOpening: Select with pool == domain == dictionary.
//
// Notes:
//   - The domain is split into contiguous chunks evaluated concurrently (errgroup);
//     each chunk keeps its first maximum and chunks are reduced in order, so ties
//     resolve to the earliest guess in domain order regardless of worker count.
//   - Partitions are memoized per (guess, pool fingerprint) in an LRU.

package solver

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/kanadle/internal/candidates"
	"github.com/robalobadob/kanadle/internal/feedback"
)

const (
	// DefaultNarrowThreshold is the largest pool that is searched over itself.
	DefaultNarrowThreshold = 200

	// DefaultPatternCacheSize bounds the partition memo.
	DefaultPatternCacheSize = 1 << 16
)

// ErrEmptyDomain is returned when there is nothing to guess from.
var ErrEmptyDomain = errors.New("empty guess domain")

// Result is a recommended guess and its expected information gain in bits.
type Result struct {
	Guess feedback.Word `json:"guess"`
	Bits  float64       `json:"bits"`
}

// Progress is called once per evaluated guess. It may be called from several
// goroutines at once.
type Progress func(done, total int)

type patternKey struct {
	guess feedback.Word
	pool  feedback.Digest
}

// Selector picks guesses for a fixed dictionary.
type Selector struct {
	scorer     feedback.Scorer
	dictionary []feedback.Word
	threshold  int
	workers    int
	cacheSize  int
	patterns   *lru.Cache[patternKey, Partition]
	progress   Progress
	log        zerolog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithNarrowThreshold sets the pool size at or below which the pool is its own domain.
func WithNarrowThreshold(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// WithWorkers sets search parallelism. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Selector) { s.workers = n }
}

// WithPatternCacheSize bounds the partition memo; 0 disables it.
func WithPatternCacheSize(n int) Option {
	return func(s *Selector) { s.cacheSize = n }
}

// WithProgress installs a per-guess progress callback.
func WithProgress(p Progress) Option {
	return func(s *Selector) { s.progress = p }
}

// WithLogger sets the logger used for search timings.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Selector) { s.log = l }
}

// New builds a Selector over dictionary. The slice is referenced, not copied.
func New(scorer feedback.Scorer, dictionary []feedback.Word, opts ...Option) *Selector {
	s := &Selector{
		scorer:     scorer,
		dictionary: dictionary,
		threshold:  DefaultNarrowThreshold,
		cacheSize:  DefaultPatternCacheSize,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.cacheSize > 0 {
		s.patterns, _ = lru.New[patternKey, Partition](s.cacheSize)
	}
	return s
}

// Domain returns pool when len(pool) <= threshold, otherwise the full dictionary.
// Small pools favour guesses that can win outright; large ones favour the best split.
func (s *Selector) Domain(pool []feedback.Word) []feedback.Word {
	if len(pool) <= s.threshold {
		return pool
	}
	return s.dictionary
}

// Recommend selects the next guess for pool using the domain policy.
func (s *Selector) Recommend(ctx context.Context, pool []feedback.Word) (Result, error) {
	return s.Select(ctx, pool, s.Domain(pool))
}

// PrecomputeOpening evaluates every dictionary word against the whole dictionary.
// Its cost is quadratic in the dictionary size; callers persist the result.
func (s *Selector) PrecomputeOpening(ctx context.Context) (Result, error) {
	s.log.Info().Int("words", len(s.dictionary)).Msg("precomputing opening guess")
	start := time.Now()
	res, err := s.Select(ctx, s.dictionary, s.dictionary)
	if err != nil {
		return Result{}, err
	}
	s.log.Info().
		Str("guess", res.Guess.String()).
		Float64("bits", res.Bits).
		Dur("elapsed", time.Since(start)).
		Msg("opening guess computed")
	return res, nil
}

// Partition returns the partition guess induces on pool, using the memo when
// enabled. The result is the caller's to modify.
func (s *Selector) Partition(guess feedback.Word, pool []feedback.Word) Partition {
	p := s.partition(guess, pool, feedback.Fingerprint(pool))
	p.Buckets = slices.Clone(p.Buckets)
	return p
}

func (s *Selector) partition(guess feedback.Word, pool []feedback.Word, key feedback.Digest) Partition {
	if s.patterns == nil {
		return PartitionOf(s.scorer, guess, pool)
	}
	k := patternKey{guess: guess, pool: key}
	if p, ok := s.patterns.Get(k); ok {
		return p
	}
	p := PartitionOf(s.scorer, guess, pool)
	s.patterns.Add(k, p)
	return p
}

type chunkBest struct {
	idx  int
	bits float64
}

// Select returns the guess in domain with the highest expected information gain
// over pool. A single-word pool is returned immediately with zero gain.
func (s *Selector) Select(ctx context.Context, pool, domain []feedback.Word) (Result, error) {
	switch {
	case len(pool) == 0:
		return Result{}, candidates.ErrNoCandidates
	case len(pool) == 1:
		return Result{Guess: pool[0], Bits: 0}, nil
	case len(domain) == 0:
		return Result{}, ErrEmptyDomain
	}

	start := time.Now()
	var key feedback.Digest
	if s.patterns != nil {
		key = feedback.Fingerprint(pool)
	}

	workers := s.workers
	if workers > len(domain) {
		workers = len(domain)
	}
	size := (len(domain) + workers - 1) / workers
	bests := make([]chunkBest, workers)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * size
		hi := lo + size
		if hi > len(domain) {
			hi = len(domain)
		}
		bests[w] = chunkBest{idx: -1, bits: -1}
		if lo >= hi {
			continue
		}
		w := w
		g.Go(func() error {
			best := chunkBest{idx: -1, bits: -1}
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				bits := s.partition(domain[i], pool, key).Entropy()
				if bits > best.bits {
					best = chunkBest{idx: i, bits: bits}
				}
				if s.progress != nil {
					s.progress(int(done.Add(1)), len(domain))
				}
			}
			bests[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := chunkBest{idx: -1, bits: -1}
	for _, b := range bests {
		if b.idx >= 0 && b.bits > best.bits {
			best = b
		}
	}

	s.log.Debug().
		Int("pool", len(pool)).
		Int("domain", len(domain)).
		Int("workers", workers).
		Str("guess", domain[best.idx].String()).
		Float64("bits", best.bits).
		Dur("elapsed", time.Since(start)).
		Msg("guess selected")
	return Result{Guess: domain[best.idx], Bits: best.bits}, nil
}
