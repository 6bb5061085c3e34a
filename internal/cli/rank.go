package cli

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func newRankCmd(f *rootFlags) *cobra.Command {
	var (
		tokens string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank guesses once, optionally after filtering by known feedback",
		Example: `  solver rank
  solver rank --feedback "1a !p ?l"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, lists, err := f.load(cmd)
			if err != nil {
				return err
			}
			rec, err := feedback.Parse(tokens)
			if err != nil {
				return err
			}
			pool := constraint.Filter(lists.Answers, rec)

			ranked := []search.ScoredGuess{}
			if len(pool) > 0 {
				if ranked, err = solver.RankPool(cmd.Context(), pool, lists.Guesses, c.SolverOptions(nil)); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, map[string]any{"pool": len(pool), "ranked": ranked})
			}
			printRanked(w, 1, len(pool), ranked)
			printCandidates(w, pool)
			return nil
		},
	}
	cmd.Flags().StringVar(&tokens, "feedback", "", "feedback tokens to apply before ranking")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
