package feedback

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMemoizes(t *testing.T) {
	for _, policy := range []Policy{PolicyLRU, PolicyUnbounded} {
		t.Run(string(policy), func(t *testing.T) {
			cache, err := NewCache(policy, 16)
			require.NoError(t, err)
			e := NewEngine(cache)

			g, a := MustWord("あいうえ"), MustWord("あきうけ")
			assert.Equal(t, Compute(g, a), e.Feedback(g, a))
			assert.Equal(t, Compute(g, a), e.Feedback(g, a))
			assert.Equal(t, Compute(a, g), e.Feedback(a, g))

			st := e.Stats()
			assert.Equal(t, 2, st.Entries)
			assert.Equal(t, uint64(1), st.Hits)
			assert.Equal(t, uint64(2), st.Misses)

			e.Clear()
			assert.Equal(t, CacheStats{}, e.Stats())
		})
	}
}

func TestLRUEvicts(t *testing.T) {
	cache, err := NewCache(PolicyLRU, 2)
	require.NoError(t, err)
	e := NewEngine(cache)

	words := []Word{MustWord("あいうえ"), MustWord("かきくけ"), MustWord("さしすせ")}
	for _, w := range words {
		e.Feedback(w, words[0])
	}
	assert.Equal(t, 2, e.Stats().Entries)
}

func TestNewCacheRejectsBadConfig(t *testing.T) {
	_, err := NewCache(PolicyLRU, 0)
	assert.Error(t, err)
	_, err = NewCache("fifo", 10)
	assert.Error(t, err)

	c, err := NewCache(PolicyUnbounded, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestEngineConcurrentUse(t *testing.T) {
	e := NewEngine(nil)
	words := []Word{MustWord("あいうえ"), MustWord("かきくけ"), MustWord("がぎぐげ"), MustWord("ああかか")}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, g := range words {
				for _, a := range words {
					assert.Equal(t, Compute(g, a), e.Feedback(g, a))
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, len(words)*len(words), e.Stats().Entries)
}
