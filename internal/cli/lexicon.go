package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/lexicon"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newLexiconCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Manage the SQLite word-list lexicon",
	}
	cmd.AddCommand(newLexiconBuildCmd(f))
	cmd.AddCommand(newLexiconStatsCmd(f))
	return cmd
}

func newLexiconBuildCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build PATH",
		Short: "Write the current word lists (files or embedded) into a lexicon database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.config(cmd)
			src := c.Words
			src.DB = "" // never read from the database being written
			lists, err := words.Load(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := lexicon.Build(cmd.Context(), args[0], lists.Answers, lists.Guesses); err != nil {
				return err
			}
			a, g := lists.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d answers, %d guesses\n", args[0], a, g)
			return nil
		},
	}
}

func newLexiconStatsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts of the lexicon given by --db",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.config(cmd)
			if c.Words.DB == "" {
				return errors.New("no lexicon: set --db or WORDS_DB")
			}
			s, err := lexicon.Open(c.Words.DB)
			if err != nil {
				return err
			}
			defer s.Close()
			a, g, err := s.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "answers: %d\nallowed: %d\n", a, g)
			return nil
		},
	}
}
