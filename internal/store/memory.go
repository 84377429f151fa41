// internal/store/memory.go
//
// In-memory keyed store for solver sessions and practice games.
//
// Characteristics:
//   - Values are keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for ID-keyed state.
type Store[T any] interface {
	Save(ctx context.Context, id string, v T) error
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore[T any]() Store[T] {
	return &memory[T]{items: make(map[string]T)}
}

func (m *memory[T]) Save(_ context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return nil
}

func (m *memory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

// Delete is a no-op for unknown IDs.
func (m *memory[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
