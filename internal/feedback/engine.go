// internal/feedback/engine.go
//
// Engine is the memoizing Scorer shared by the candidate filter and the
// guess selector. It owns its cache; hit/miss counters are exposed for
// diagnostics (/debug/cache).

package feedback

import "sync/atomic"

// Engine memoizes Compute.
type Engine struct {
	cache  Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a snapshot of Engine's cache counters.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// NewEngine wraps cache. A nil cache gets the default LRU.
func NewEngine(cache Cache) *Engine {
	if cache == nil {
		cache, _ = NewCache(PolicyLRU, DefaultCapacity)
	}
	return &Engine{cache: cache}
}

// Feedback returns Compute(guess, answer), consulting the cache first.
func (e *Engine) Feedback(guess, answer Word) Vector {
	if v, ok := e.cache.Get(guess, answer); ok {
		e.hits.Add(1)
		return v
	}
	e.misses.Add(1)
	v := Compute(guess, answer)
	e.cache.Add(guess, answer, v)
	return v
}

// Stats reports cache size and counters.
func (e *Engine) Stats() CacheStats {
	return CacheStats{
		Entries: e.cache.Len(),
		Hits:    e.hits.Load(),
		Misses:  e.misses.Load(),
	}
}

// Clear empties the cache and resets counters.
func (e *Engine) Clear() {
	e.cache.Clear()
	e.hits.Store(0)
	e.misses.Store(0)
}
