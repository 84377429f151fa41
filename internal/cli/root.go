// Package cli provides the kanadle command-line interface.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kanadle/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// app carries state shared by every command.
type app struct {
	cfgFile string
	cfg     *config.Config
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "kanadle",
		Short: "kanadle - entropy solver for four-kana Wordle",
		Long: `kanadle recommends guesses for a four-kana Wordle variant.

Feedback is six-valued: besides exact and present it reports kana that share
the answer kana's row (行) or column (段), or differ only by voicing or size.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			lvl, _ := cfg.Level()
			zerolog.SetGlobalLevel(lvl)
			if cfg.File != "" {
				log.Debug().Str("file", cfg.File).Msg("using config file")
			}
			a.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} (%s)\n", GitCommit))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./kanadle.yaml)")
	pf.String("dictionary", "", "word list (.ts quoted literals or one word per line; empty for built-in)")
	pf.String("frequencies", "", "word frequency CSV (word,freq; empty for built-in)")
	pf.String("database", "", "SQLite file for openings and daily results (default ./data/kanadle.db; \":memory:\" or empty to disable)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.Int("threshold", 0, "largest pool searched over itself instead of the dictionary")
	pf.Int("workers", 0, "parallel search workers (0 for GOMAXPROCS)")
	pf.String("cache-policy", "", "feedback cache policy (lru|unbounded)")
	pf.Int("cache-size", 0, "feedback cache capacity for the lru policy")

	_ = rootCmd.RegisterFlagCompletionFunc("cache-policy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"lru", "unbounded"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newSolveCommand(a))
	rootCmd.AddCommand(newPrecomputeCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newScoreCommand())
	rootCmd.AddCommand(newTokenCommand(a))
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kanadle v%s (%s)\n", Version, GitCommit)
		},
	}
}
