// internal/feedback/cache.go
//
// Memoization for Engine.
// Two policies are available and chosen explicitly by configuration:
//   - "lru":       bounded, least-recently-used eviction (hashicorp/golang-lru).
//   - "unbounded": grows until Clear is called.
//
// Both are safe for concurrent use. Values are pure functions of the key, so
// concurrent callers compute first and insert afterwards; a duplicate insert
// stores the same vector and is harmless.

package feedback

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Policy names a cache eviction policy.
type Policy string

const (
	PolicyLRU       Policy = "lru"
	PolicyUnbounded Policy = "unbounded"
)

// DefaultCapacity bounds the LRU policy unless configured otherwise.
const DefaultCapacity = 100_000

type pair struct {
	guess, answer Word
}

// Cache stores computed vectors keyed by (guess, answer).
type Cache interface {
	Get(guess, answer Word) (Vector, bool)
	Add(guess, answer Word, v Vector)
	Len() int
	Clear()
}

// NewCache builds a cache for policy. capacity is ignored by PolicyUnbounded.
func NewCache(policy Policy, capacity int) (Cache, error) {
	switch policy {
	case PolicyLRU, "":
		if capacity <= 0 {
			return nil, fmt.Errorf("feedback cache: lru capacity must be positive, got %d", capacity)
		}
		c, err := lru.New[pair, Vector](capacity)
		if err != nil {
			return nil, fmt.Errorf("feedback cache: %w", err)
		}
		return &lruCache{c: c}, nil
	case PolicyUnbounded:
		return &mapCache{m: make(map[pair]Vector)}, nil
	default:
		return nil, fmt.Errorf("feedback cache: unknown policy %q", policy)
	}
}

type lruCache struct {
	c *lru.Cache[pair, Vector]
}

func (l *lruCache) Get(g, a Word) (Vector, bool) { return l.c.Get(pair{g, a}) }
func (l *lruCache) Add(g, a Word, v Vector)      { l.c.Add(pair{g, a}, v) }
func (l *lruCache) Len() int                     { return l.c.Len() }
func (l *lruCache) Clear()                       { l.c.Purge() }

type mapCache struct {
	mu sync.RWMutex
	m  map[pair]Vector
}

func (c *mapCache) Get(g, a Word) (Vector, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[pair{g, a}]
	return v, ok
}

func (c *mapCache) Add(g, a Word, v Vector) {
	c.mu.Lock()
	c.m[pair{g, a}] = v
	c.mu.Unlock()
}

func (c *mapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *mapCache) Clear() {
	c.mu.Lock()
	c.m = make(map[pair]Vector)
	c.mu.Unlock()
}
