package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/kanadle/internal/config"
	"github.com/robalobadob/kanadle/internal/feedback"
)

// scriptedReader replays fixed lines, then reports EOF.
type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) SetPrompt(p string) { r.prompts = append(r.prompts, p) }

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

// oracleReader accepts every recommendation and answers with true feedback.
type oracleReader struct {
	answer  feedback.Word
	last    feedback.Word
	guesses int
}

func (r *oracleReader) SetPrompt(p string) {
	if rest, ok := strings.CutPrefix(p, "guess ["); ok {
		r.last = feedback.MustWord(strings.TrimSuffix(rest, "]> "))
	}
}

func (r *oracleReader) Readline() (string, error) {
	if r.last == (feedback.Word{}) {
		return "", io.EOF
	}
	if r.guesses%2 == 0 {
		r.guesses++
		return "", nil
	}
	r.guesses++
	v := feedback.Compute(r.last, r.answer)
	r.last = feedback.Word{}
	return v.String(), nil
}

func testLoop(t *testing.T, in LineReader) (*solveLoop, *bytes.Buffer) {
	t.Helper()
	chdir(t, t.TempDir())
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	rt, err := newRuntime(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	e, _, err := rt.opening(context.Background(), false, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	return &solveLoop{in: in, out: &out, sess: rt.setup(&e.Result).New("t"), freq: rt.freq, limit: 50}, &out
}

func TestSolveLoopReachesAnswer(t *testing.T) {
	in := &oracleReader{answer: feedback.MustWord("あきうけ")}
	loop, out := testLoop(t, in)

	require.NoError(t, loop.run(context.Background()))
	assert.Contains(t, out.String(), "SOLUTION FOUND: あきうけ")
	assert.Contains(t, out.String(), "Recommended guess")
}

func TestSolveLoopRepromptsOnBadFeedback(t *testing.T) {
	in := &scriptedReader{lines: []string{"あいう", "あいうえ", "42a2", "4262", "4242"}}
	loop, out := testLoop(t, in)

	require.NoError(t, loop.run(context.Background()))
	text := out.String()
	assert.Contains(t, text, "malformed word")
	assert.Equal(t, 2, strings.Count(text, "malformed feedback"))
	assert.Contains(t, text, "4242:")
	assert.Contains(t, in.prompts, "feedback> ")
}

func TestSolveLoopReportsInconsistency(t *testing.T) {
	in := &scriptedReader{lines: []string{"あいうえ", "4440"}}
	loop, out := testLoop(t, in)

	require.NoError(t, loop.run(context.Background()))
	assert.Contains(t, out.String(), "No candidate matches")
	assert.Contains(t, out.String(), "round 1: あいうえ 4440")
}

func TestSolveLoopFallsBackOnUnknownWord(t *testing.T) {
	in := &scriptedReader{lines: []string{"ぬぬぬぬ", "0000", "quit"}}
	loop, out := testLoop(t, in)

	require.NoError(t, loop.run(context.Background()))
	assert.Contains(t, out.String(), "ぬぬぬぬ is not in the dictionary")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "score", "あいうえ", "あきうけ")
	require.NoError(t, err)
	assert.Contains(t, out, "あいうえ → あきうけ: 4242")
	assert.Contains(t, out, "same column (段)")

	_, err = execute(t, "score", "あい", "あきうけ")
	assert.ErrorIs(t, err, feedback.ErrMalformedWord)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kanadle v"+Version)
}

func TestPrecomputeCachesInDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kanadle.db")

	out, err := execute(t, "precompute", "--database", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "computed")

	out, err = execute(t, "precompute", "--database", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "cached")

	out, err = execute(t, "precompute", "--database", dbPath, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "computed")
}

func TestPrecomputePersistsByDefault(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "precompute")
	require.NoError(t, err)
	assert.Contains(t, out, "computed")
	assert.FileExists(t, filepath.Join("data", "kanadle.db"))

	out, err = execute(t, "precompute")
	require.NoError(t, err)
	assert.Contains(t, out, "cached")

	out, err = execute(t, "precompute", "--database", config.InMemory)
	require.NoError(t, err)
	assert.Contains(t, out, "computed")
}

func TestTokenCommand(t *testing.T) {
	_, err := execute(t, "token")
	assert.Error(t, err, "no secret configured")

	t.Setenv("KANADLE_SERVER__ADMIN_SECRET", "s3cret")
	out, err := execute(t, "token", "--ttl", "1h")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."))
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := execute(t, "score", "あいうえ", "あきうけ", "--cache-policy", "fifo")
	assert.Error(t, err)
}
