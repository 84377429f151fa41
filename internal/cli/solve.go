package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/session"
	"github.com/robalobadob/kanadle/internal/words"
)

// LineReader is the part of readline the solve loop uses.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func newSolveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Interactively solve a puzzle",
		Long: `Recommend a guess each round and narrow the candidates with the
feedback you enter. An empty guess accepts the recommendation; "quit" exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(a.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			e, _, err := rt.opening(cmd.Context(), false, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("opening guess: %w", err)
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "guess> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			s := &solveLoop{
				in:    rl,
				out:   cmd.OutOrStdout(),
				sess:  rt.setup(&e.Result).New("cli"),
				freq:  rt.freq,
				limit: a.cfg.DisplayLimit,
			}
			return s.run(cmd.Context())
		},
	}
	cmd.Flags().Int("limit", 0, "show the candidate list when at most this many remain")
	return cmd
}

var errQuit = errors.New("quit")

// solveLoop drives one session from a line reader.
type solveLoop struct {
	in    LineReader
	out   io.Writer
	sess  *session.Session
	freq  words.Frequencies
	limit int
}

func (s *solveLoop) run(ctx context.Context) error {
	renderLegend(s.out)
	for {
		snap := s.sess.Snapshot()
		switch snap.State {
		case session.Solved:
			sol, _ := s.sess.Solution()
			_, _ = fmt.Fprintf(s.out, "SOLUTION FOUND: %s\n", sol)
			return nil
		case session.Inconsistent:
			s.reportInconsistent(snap)
			return nil
		}

		n := len(snap.Candidates)
		if n <= s.limit {
			renderCandidates(s.out, snap.Candidates, s.freq)
		}
		rec, err := s.sess.Recommend(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(s.out, "Round %d: %s left. Recommended guess: %s (%.3f bits, at most %d left after)\n",
			snap.Round, plural(n, "candidate"), rec.Guess, rec.Bits, s.sess.Split(rec.Guess).Largest())

		guess, fallback, err := s.readGuess(rec.Guess)
		if err != nil {
			return quitOrErr(err)
		}
		observed, err := s.readFeedback()
		if err != nil {
			return quitOrErr(err)
		}

		turn, err := s.sess.Apply(ctx, guess, observed, fallback)
		if err != nil {
			return err
		}
		if turn.FellBack {
			_, _ = fmt.Fprintf(s.out, "%s is not in the dictionary; using %s instead.\n", guess, turn.Guess)
		}
		_, _ = fmt.Fprintf(s.out, "%s: %s removed, %s remaining.\n",
			turn.Feedback, plural(turn.Removed, "candidate"), plural(turn.Remaining, "candidate"))
	}
}

// readGuess returns the entered guess, or rec on empty input. fallback is set
// so that unknown words are replaced by the recommendation.
func (s *solveLoop) readGuess(rec feedback.Word) (feedback.Word, bool, error) {
	for {
		s.in.SetPrompt(fmt.Sprintf("guess [%s]> ", rec))
		line, err := s.readLine()
		if err != nil {
			return feedback.Word{}, false, err
		}
		if line == "" {
			return rec, false, nil
		}
		w, err := feedback.ParseWord(line)
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "%v; enter four kana.\n", err)
			continue
		}
		return w, true, nil
	}
}

func (s *solveLoop) readFeedback() (feedback.Vector, error) {
	s.in.SetPrompt("feedback> ")
	for {
		line, err := s.readLine()
		if err != nil {
			return feedback.Vector{}, err
		}
		v, err := feedback.ParseVector(line)
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "%v; enter four digits 0-5.\n", err)
			continue
		}
		return v, nil
	}
}

func (s *solveLoop) readLine() (string, error) {
	line, err := s.in.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errQuit
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "quit" || line == "exit" {
		return "", errQuit
	}
	return line, nil
}

func (s *solveLoop) reportInconsistent(snap session.Snapshot) {
	_, _ = fmt.Fprintln(s.out, "No candidate matches all feedback. Check the entries:")
	for _, t := range snap.History {
		_, _ = fmt.Fprintf(s.out, "  round %d: %s %s\n", t.Round, t.Guess, t.Feedback)
	}
}

func quitOrErr(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
