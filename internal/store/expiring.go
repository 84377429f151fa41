// internal/store/expiring.go
//
// Bounded, expiring Store for long-running servers.
//
// Characteristics:
//   - At most size entries; the least recently used one is evicted beyond that.
//   - Entries expire ttl after their last Save; saving again refreshes them.
//   - Expired entries are invisible to Get even before the sweeper drops them.

package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type expiring[T any] struct {
	c *expirable.LRU[string, T]
}

// NewExpiringStore constructs a Store holding at most size entries (0 means no
// bound) that expire ttl after they were last saved (0 means never).
func NewExpiringStore[T any](size int, ttl time.Duration) Store[T] {
	return &expiring[T]{c: expirable.NewLRU[string, T](size, nil, ttl)}
}

func (e *expiring[T]) Save(_ context.Context, id string, v T) error {
	e.c.Add(id, v)
	return nil
}

func (e *expiring[T]) Get(_ context.Context, id string) (T, error) {
	if v, ok := e.c.Get(id); ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

// Delete is a no-op for unknown IDs.
func (e *expiring[T]) Delete(_ context.Context, id string) error {
	e.c.Remove(id)
	return nil
}

func (e *expiring[T]) Len() int { return e.c.Len() }
