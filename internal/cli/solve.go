// internal/cli/solve.go
//
// Interactive solving: print the ranking, read one line of feedback, repeat.
//
// Accepted input per round:
//   tokens          1a !3r !e ?s      (see internal/feedback)
//   guess + marks   crane 20100       (2/g hit, 1/y present, 0/b/. miss)
//   =word           note which word was actually played (logged only)
//   q               quit

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newSolveCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve interactively, entering feedback after each guess",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, lists, err := f.load(cmd)
			if err != nil {
				return err
			}
			l := solver.New(lists, c.SolverOptions(nil))
			src := &promptSource{
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
				loop: l,
			}

			out, err := solver.Run(cmd.Context(), l, src)
			if err != nil && !errors.Is(err, solver.ErrStop) {
				return err
			}
			printCandidates(cmd.OutOrStdout(), l.Pool())
			printOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// promptSource reads feedback records from a line-oriented reader.
type promptSource struct {
	in     *bufio.Scanner
	out    io.Writer
	loop   *solver.Loop
	played string
}

func (p *promptSource) Next(ctx context.Context, round int, ranked []search.ScoredGuess) (constraint.Record, error) {
	pool := p.loop.Pool()
	printRanked(p.out, round, len(pool), ranked)
	printCandidates(p.out, pool)

	for {
		fmt.Fprint(p.out, "feedback> ")
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return constraint.Record{}, err
			}
			return constraint.Record{}, solver.ErrStop
		}
		if err := ctx.Err(); err != nil {
			return constraint.Record{}, err
		}

		line := strings.TrimSpace(p.in.Text())
		switch {
		case line == "":
			continue
		case line == "q" || line == "quit":
			return constraint.Record{}, solver.ErrStop
		case strings.HasPrefix(line, "="):
			p.played = strings.ToLower(strings.TrimSpace(line[1:]))
			log.Info().Int("round", round).Str("guess", p.played).Msg("guess played")
			continue
		}

		rec, err := parseLine(line)
		if err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return rec, nil
	}
}

// parseLine accepts "guess marks" or feedback tokens.
func parseLine(line string) (constraint.Record, error) {
	if fields := strings.Fields(line); len(fields) == 2 && len(fields[0]) == words.Length {
		if marks, err := game.ParsePattern(fields[1]); err == nil {
			return game.Record(strings.ToLower(fields[0]), marks)
		}
	}
	return feedback.Parse(line)
}
