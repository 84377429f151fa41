package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[*int]()

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	v := 7
	require.NoError(t, s.Save(ctx, "a", &v))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, &v, got)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, s.Len())
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int]()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprint(i)
			_ = s.Save(ctx, id, i)
			got, err := s.Get(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, i, got)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 32, s.Len())
}

func TestExpiringStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := NewExpiringStore[string](2, 0)

	require.NoError(t, s.Save(ctx, "a", "A"))
	require.NoError(t, s.Save(ctx, "b", "B"))
	_, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "c", "C"))

	assert.Equal(t, 2, s.Len())
	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	assert.Equal(t, 1, s.Len())
}

func TestExpiringStoreExpires(t *testing.T) {
	ctx := context.Background()
	s := NewExpiringStore[int](0, 50*time.Millisecond)

	require.NoError(t, s.Save(ctx, "a", 1))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	assert.Eventually(t, func() bool {
		_, err := s.Get(ctx, "a")
		return errors.Is(err, ErrNotFound)
	}, 2*time.Second, 10*time.Millisecond)
}
