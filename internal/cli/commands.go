package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kanadle/internal/daily"
	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/httpserver"
)

func newPrecomputeCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "precompute",
		Short: "Compute and cache the opening guess for the dictionary",
		Long: `Evaluate every dictionary word against the whole dictionary and store
the best opening guess, keyed by the dictionary's fingerprint. Cached results
are reused unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(a.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			e, cached, err := rt.opening(cmd.Context(), force, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			source := "computed"
			if cached {
				source = "cached"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "opening: %s (%.4f bits, %s, %s)\n",
				e.Result.Guess, e.Result.Bits, plural(e.Words, "word"), source)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "recompute even when a cached opening exists")
	return cmd
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(a.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			e, _, err := rt.opening(cmd.Context(), false, nil)
			if err != nil {
				return fmt.Errorf("opening guess: %w", err)
			}

			deps := httpserver.Deps{
				Setup:       rt.setup(&e.Result),
				Engine:      rt.engine,
				Frequencies: rt.freq,
				Openings:    rt.openings,
			}
			if rt.sql != nil {
				deps.Daily = daily.NewStore(rt.sql)
			}
			sc := a.cfg.Server
			srv := httpserver.New(httpserver.Config{
				ClientOrigin: sc.ClientOrigin,
				AdminSecret:  sc.AdminSecret,
				DailySalt:    sc.DailySalt,
				Rows:         sc.Rows,
				DisplayLimit: a.cfg.DisplayLimit,
			}, deps)

			log.Info().Str("addr", sc.Addr).Int("words", rt.dict.Len()).Msg("starting kanadle server")
			return srv.Start(sc.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :5175)")
	return cmd
}

func newScoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score GUESS ANSWER",
		Short: "Print the feedback a guess receives against an answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			guess, err := feedback.ParseWord(args[0])
			if err != nil {
				return fmt.Errorf("guess: %w", err)
			}
			answer, err := feedback.ParseWord(args[1])
			if err != nil {
				return fmt.Errorf("answer: %w", err)
			}
			renderScore(cmd.OutOrStdout(), guess, answer, feedback.Compute(guess, answer))
			return nil
		},
	}
}

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for POST /admin/opening",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, exp, err := httpserver.SignAdminToken(a.cfg.Server.AdminSecret, subject, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tok)
			log.Info().Time("expires", exp).Msg("admin token issued")
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
