package solver

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kanadle/internal/candidates"
	"github.com/robalobadob/kanadle/internal/feedback"
)

var syllables = []rune("あいうえおかきくけこさしすせそがぎぐばぱ")

// synthetic builds n distinct words from the syllable table.
func synthetic(n int) []feedback.Word {
	out := make([]feedback.Word, 0, n)
	k := len(syllables)
	for i := 0; len(out) < n; i++ {
		out = append(out, feedback.Word{
			syllables[i%k],
			syllables[(i/k)%k],
			syllables[(i*7+3)%k],
			syllables[(i/(k*k)+i)%k],
		})
	}
	return out
}

func dedupe(ws []feedback.Word) []feedback.Word {
	seen := map[feedback.Word]bool{}
	out := ws[:0:0]
	for _, w := range ws {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

type countingScorer struct {
	calls atomic.Int64
}

func (c *countingScorer) Feedback(g, a feedback.Word) feedback.Vector {
	c.calls.Add(1)
	return feedback.Compute(g, a)
}

type recordingScorer struct {
	mu      sync.Mutex
	guesses map[feedback.Word]bool
}

func (r *recordingScorer) Feedback(g, a feedback.Word) feedback.Vector {
	r.mu.Lock()
	r.guesses[g] = true
	r.mu.Unlock()
	return feedback.Compute(g, a)
}

func mustWords(t *testing.T, list ...string) []feedback.Word {
	t.Helper()
	ws, err := feedback.Words(list...)
	require.NoError(t, err)
	return ws
}

func TestSelectSingletonPool(t *testing.T) {
	s := New(feedback.Pure, nil)
	pool := mustWords(t, "あきうけ")

	res, err := s.Select(context.Background(), pool, mustWords(t, "かきくけ", "あいうえ"))
	require.NoError(t, err)
	assert.Equal(t, pool[0], res.Guess)
	assert.Equal(t, 0.0, res.Bits)
}

func TestSelectEmptyInputs(t *testing.T) {
	s := New(feedback.Pure, nil)

	_, err := s.Select(context.Background(), nil, mustWords(t, "あいうえ"))
	assert.ErrorIs(t, err, candidates.ErrNoCandidates)

	_, err = s.Select(context.Background(), mustWords(t, "あいうえ", "かきくけ"), nil)
	assert.ErrorIs(t, err, ErrEmptyDomain)
}

func TestSelectPerfectSplitIsOneBit(t *testing.T) {
	pool := mustWords(t, "あいうえ", "かきくけ")
	s := New(feedback.Pure, pool)

	// さしすせ gives 2222 against both, so it carries no information.
	res, err := s.Select(context.Background(), pool, mustWords(t, "さしすせ", "かきくけ", "あいうえ"))
	require.NoError(t, err)
	assert.Equal(t, "かきくけ", res.Guess.String())
	assert.Equal(t, 1.0, res.Bits)
}

func TestSelectTieBreaksOnDomainOrder(t *testing.T) {
	pool := mustWords(t, "あいうえ", "かきくけ")
	for _, workers := range []int{1, 2, 3} {
		s := New(feedback.Pure, pool, WithWorkers(workers))
		res, err := s.Select(context.Background(), pool, mustWords(t, "あいうえ", "かきくけ"))
		require.NoError(t, err)
		assert.Equal(t, "あいうえ", res.Guess.String(), "workers=%d", workers)
	}
}

func TestSelectDeterministicAcrossWorkers(t *testing.T) {
	dict := dedupe(synthetic(300))
	pool := dict[:120]

	want, err := New(feedback.Pure, dict, WithWorkers(1)).Select(context.Background(), pool, dict)
	require.NoError(t, err)
	for _, workers := range []int{2, 5, 16} {
		got, err := New(feedback.Pure, dict, WithWorkers(workers)).Select(context.Background(), pool, dict)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestSelectMatchesBruteForce(t *testing.T) {
	dict := dedupe(synthetic(80))
	s := New(feedback.Pure, dict, WithWorkers(4))

	res, err := s.Select(context.Background(), dict, dict)
	require.NoError(t, err)

	bestIdx, bestBits := -1, -1.0
	for i, g := range dict {
		if bits := PartitionOf(feedback.Pure, g, dict).Entropy(); bits > bestBits {
			bestIdx, bestBits = i, bits
		}
	}
	assert.Equal(t, dict[bestIdx], res.Guess)
	assert.Equal(t, bestBits, res.Bits)
}

func TestPartitionCountsSumToPool(t *testing.T) {
	dict := dedupe(synthetic(150))
	for _, g := range dict[:25] {
		p := PartitionOf(feedback.Pure, g, dict)
		sum := 0
		for _, b := range p.Buckets {
			assert.Positive(t, b.Count)
			sum += b.Count
		}
		assert.Equal(t, len(dict), sum)
		assert.Equal(t, len(dict), p.Total)
		assert.LessOrEqual(t, p.Largest(), len(dict))
	}
}

func TestPartitionEntropyBounds(t *testing.T) {
	assert.Equal(t, 0.0, Partition{}.Entropy())
	one := Partition{Buckets: []Bucket{{Count: 4}}, Total: 4}
	assert.Equal(t, 0.0, one.Entropy())
	four := Partition{Buckets: []Bucket{{Count: 1}, {Count: 1}, {Count: 1}, {Count: 1}}, Total: 4}
	assert.Equal(t, 2.0, four.Entropy())
}

func TestDomainPolicyBoundary(t *testing.T) {
	dict := dedupe(synthetic(201))
	require.Len(t, dict, 201)
	s := New(feedback.Pure, dict)

	assert.Equal(t, dict, s.Domain(dict))
	assert.Equal(t, dict[:200], s.Domain(dict[:200]))
	assert.Equal(t, dict[1:], s.Domain(dict[1:]))

	custom := New(feedback.Pure, dict, WithNarrowThreshold(10))
	assert.Equal(t, dict, custom.Domain(dict[:11]))
	assert.Equal(t, dict[:10], custom.Domain(dict[:10]))
}

func TestRecommendUsesDomainPolicy(t *testing.T) {
	dict := dedupe(synthetic(260))
	require.Greater(t, len(dict), 201)

	narrow := &recordingScorer{guesses: map[feedback.Word]bool{}}
	s := New(narrow, dict, WithPatternCacheSize(0))
	_, err := s.Recommend(context.Background(), dict[:200])
	require.NoError(t, err)
	assert.Len(t, narrow.guesses, 200)
	for _, w := range dict[200:] {
		assert.False(t, narrow.guesses[w], "%s evaluated for a narrow pool", w)
	}

	wide := &recordingScorer{guesses: map[feedback.Word]bool{}}
	s = New(wide, dict, WithPatternCacheSize(0))
	_, err = s.Recommend(context.Background(), dict[:201])
	require.NoError(t, err)
	assert.Len(t, wide.guesses, len(dict))
}

func TestPatternCacheAvoidsRecomputation(t *testing.T) {
	dict := dedupe(synthetic(60))
	scorer := &countingScorer{}
	s := New(scorer, dict)

	first, err := s.Select(context.Background(), dict, dict)
	require.NoError(t, err)
	calls := scorer.calls.Load()
	assert.Equal(t, int64(len(dict)*len(dict)), calls)

	second, err := s.Select(context.Background(), dict, dict)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, scorer.calls.Load())

	// A different pool is a different key.
	_, err = s.Select(context.Background(), dict[:30], dict)
	require.NoError(t, err)
	assert.Greater(t, scorer.calls.Load(), calls)
}

func TestPartitionIsolatedFromMemo(t *testing.T) {
	dict := dedupe(synthetic(60))
	scorer := &countingScorer{}
	s := New(scorer, dict)

	first := s.Partition(dict[0], dict)
	calls := scorer.calls.Load()
	want := PartitionOf(feedback.Pure, dict[0], dict)
	require.Equal(t, want, first)

	for i := range first.Buckets {
		first.Buckets[i].Count = 0
	}
	second := s.Partition(dict[0], dict)
	assert.Equal(t, want, second)
	assert.Equal(t, calls, scorer.calls.Load(), "second lookup should hit the memo")
	assert.Equal(t, want.Largest(), second.Largest())
}

func TestPrecomputeOpeningReportsProgress(t *testing.T) {
	dict := dedupe(synthetic(40))
	var (
		mu             sync.Mutex
		calls, highest int
	)
	s := New(feedback.Pure, dict, WithWorkers(3), WithProgress(func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if done > highest {
			highest = done
		}
		assert.Equal(t, len(dict), total)
	}))

	res, err := s.PrecomputeOpening(context.Background())
	require.NoError(t, err)
	assert.Contains(t, dict, res.Guess)
	assert.Positive(t, res.Bits)
	assert.Equal(t, len(dict), calls)
	assert.Equal(t, len(dict), highest)
}

func TestSelectHonoursCancellation(t *testing.T) {
	dict := dedupe(synthetic(50))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(feedback.Pure, dict).Select(ctx, dict, dict)
	assert.ErrorIs(t, err, context.Canceled)
}
