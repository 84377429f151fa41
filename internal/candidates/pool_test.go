package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kanadle/internal/feedback"
)

func words(t *testing.T, list ...string) []feedback.Word {
	t.Helper()
	ws, err := feedback.Words(list...)
	require.NoError(t, err)
	return ws
}

func TestFilterKeepsOrder(t *testing.T) {
	dict := words(t, "さきうけ", "かきくけ", "あいうえ", "たきうけ", "あきうえ")
	guess := feedback.MustWord("あいうえ")

	// さ and た are both in the あ column, so both answers give 2242.
	got := Filter(feedback.Pure, guess, feedback.Vector{2, 2, 4, 2}, dict)
	assert.Equal(t, []string{"さきうけ", "たきうけ"}, feedback.Strings(got))

	got = Filter(feedback.Pure, guess, feedback.Vector{4, 2, 4, 4}, dict)
	assert.Equal(t, []string{"あきうえ"}, feedback.Strings(got))
}

func TestFilterIsIdempotent(t *testing.T) {
	dict := words(t, "あいうえ", "かきくけ", "あきうけ", "さしすせ", "かいうえ", "がいうえ")
	guess := feedback.MustWord("かいうえ")
	for _, answer := range dict {
		observed := feedback.Compute(guess, answer)
		once := Filter(feedback.Pure, guess, observed, dict)
		twice := Filter(feedback.Pure, guess, observed, once)
		assert.Equal(t, once, twice)
		assert.Contains(t, once, answer)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	dict := words(t, "あいうえ", "かきくけ", "あきうけ")
	snapshot := append([]feedback.Word(nil), dict...)
	_ = Filter(feedback.Pure, dict[0], feedback.Solved, dict)
	assert.Equal(t, snapshot, dict)
}

func TestPoolNarrowToSolution(t *testing.T) {
	dict := words(t, "あいうえ", "かきくけ", "あきうけ")
	p := New(feedback.Pure, dict)
	assert.Equal(t, 3, p.Len())
	_, ok := p.Solution()
	assert.False(t, ok)

	removed, err := p.Narrow(feedback.MustWord("あいうえ"), feedback.Vector{4, 2, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	w, ok := p.Solution()
	require.True(t, ok)
	assert.Equal(t, "あきうけ", w.String())
}

func TestPoolNarrowInconsistent(t *testing.T) {
	dict := words(t, "あいうえ", "かきくけ", "あきうけ")
	p := New(feedback.Pure, dict)

	removed, err := p.Narrow(feedback.MustWord("あいうえ"), feedback.Vector{5, 5, 5, 5})
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, p.Len())
	assert.Len(t, dict, 3)
}
