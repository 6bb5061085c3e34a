package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newPlayCmd(f *rootFlags) *cobra.Command {
	var (
		answer  string
		isDaily bool
		date    string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Let the solver play against a known answer",
		Example: `  solver play --answer crane
  solver play --daily --date 2025-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, lists, err := f.load(cmd)
			if err != nil {
				return err
			}

			if isDaily {
				day, err := resolveDate(time.Now(), date)
				if err != nil {
					return err
				}
				answer = daily.Answer(day, c.DailySalt, lists.Answers)
			}
			w, ok := words.Normalize(answer)
			if !ok {
				return fmt.Errorf("answer must be a 5-letter word, got %q", answer)
			}

			res, err := solver.Play(cmd.Context(), lists, w, c.SolverOptions(nil))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, res)
			}
			for i, s := range res.Steps {
				fmt.Fprintf(out, "%d. %s  %s  (pool %d)\n", i+1, s.Guess, tiles(s.Marks), s.Pool)
			}
			if res.Won {
				fmt.Fprintf(out, "won in %d\n", len(res.Steps))
			} else {
				printOutcome(out, res.Outcome)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&answer, "answer", "", "answer to play against")
	cmd.Flags().BoolVar(&isDaily, "daily", false, "play the daily answer")
	cmd.Flags().StringVar(&date, "date", "", "daily date (YYYY-MM-DD, UTC), default today")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.MarkFlagsMutuallyExclusive("answer", "daily")
	cmd.MarkFlagsOneRequired("answer", "daily")
	return cmd
}

// resolveDate parses the --date flag, defaulting to now.
func resolveDate(now time.Time, flag string) (time.Time, error) {
	if flag == "" {
		return now.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	return t, nil
}
