// internal/cli/root.go
//
// Command tree for the solver binary.
// Responsibilities:
//   - Persistent flags shared by every command (word source, search tuning).
//   - Merging flags over the environment configuration (flags win).
//   - Execute with a signal-aware context so Ctrl-C cancels a running search.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// rootFlags holds the persistent flag values.
type rootFlags struct {
	workers   int
	top       int
	maxRounds int
	timeout   time.Duration
	keepTail  bool
	unique    bool
	verbose   bool
	db        string
	answers   string
	allowed   string
}

func NewRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "solver",
		Short:         "Letter-frequency Wordle solver",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.IntVar(&f.workers, "workers", 0, "search goroutines per round (default SOLVER_WORKERS or NumCPU)")
	pf.IntVar(&f.top, "top", 0, "ranked guesses shown per round (default SOLVER_TOP or 10)")
	pf.IntVar(&f.maxRounds, "max-rounds", 0, "stop after this many rounds (default SOLVER_MAX_ROUNDS)")
	pf.DurationVar(&f.timeout, "timeout", 0, "per-round search timeout, e.g. 2s")
	pf.BoolVar(&f.keepTail, "keep-tail", false, "also score the words left over after partitioning")
	pf.BoolVar(&f.unique, "unique", false, "drop repeated words from the guess vocabulary")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&f.db, "db", "", "SQLite lexicon path (default WORDS_DB)")
	pf.StringVar(&f.answers, "answers", "", "answer list file (default WORDS_ANSWERS_FILE)")
	pf.StringVar(&f.allowed, "allowed", "", "guess list file (default WORDS_ALLOWED_FILE)")

	cmd.AddCommand(newSolveCmd(f))
	cmd.AddCommand(newRankCmd(f))
	cmd.AddCommand(newPlayCmd(f))
	cmd.AddCommand(newServeCmd(f))
	cmd.AddCommand(newTokenCmd(f))
	cmd.AddCommand(newLexiconCmd(f))

	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// config resolves the environment configuration with explicit flags applied.
func (f *rootFlags) config(cmd *cobra.Command) config.Config {
	c := config.FromEnv()
	fl := cmd.Flags()
	if fl.Changed("workers") {
		c.Workers = f.workers
	}
	if fl.Changed("top") {
		c.Top = f.top
	}
	if fl.Changed("max-rounds") {
		c.MaxRounds = f.maxRounds
	}
	if fl.Changed("timeout") {
		c.Timeout = f.timeout
	}
	if fl.Changed("keep-tail") {
		c.KeepTail = f.keepTail
	}
	if fl.Changed("unique") {
		c.Words.UniqueGuesses = f.unique
	}
	if fl.Changed("db") {
		c.Words.DB = f.db
	}
	if fl.Changed("answers") {
		c.Words.AnswersFile = f.answers
	}
	if fl.Changed("allowed") {
		c.Words.AllowedFile = f.allowed
	}
	return c
}

// load resolves configuration and word lists in one step.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, *words.Lists, error) {
	c := f.config(cmd)
	lists, err := words.Load(cmd.Context(), c.Words)
	if err != nil {
		return c, nil, fmt.Errorf("load word lists: %w", err)
	}
	return c, lists, nil
}
