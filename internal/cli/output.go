package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// printRanked writes one numbered line per ranked guess.
func printRanked(w io.Writer, round, pool int, ranked []search.ScoredGuess) {
	fmt.Fprintf(w, "round %d, pool: %d\n", round, pool)
	for i, g := range ranked {
		fmt.Fprintf(w, "%3d. %s  %8.3f\n", i+1, g.Word, g.Score)
	}
}

// printCandidates lists the pool when it is small enough to read.
func printCandidates(w io.Writer, pool []string) {
	if len(pool) == 0 || len(pool) > 20 {
		return
	}
	fmt.Fprintf(w, "candidates: %s\n", strings.Join(pool, " "))
}

// printOutcome describes how a loop ended.
func printOutcome(w io.Writer, out solver.Outcome) {
	switch {
	case out.Solved != "":
		fmt.Fprintf(w, "solved: %s (round %d)\n", out.Solved, out.Round)
	case out.Exhausted:
		fmt.Fprintln(w, "no candidates left: the feedback is inconsistent with the word list")
	case out.Limited:
		fmt.Fprintf(w, "stopped at round limit with %d candidates\n", out.Pool)
	default:
		fmt.Fprintf(w, "stopped with %d candidates\n", out.Pool)
	}
}

// tiles renders marks as g/y/. for terminals without color.
func tiles(marks []game.Mark) string {
	var b strings.Builder
	for _, m := range marks {
		switch m {
		case game.MarkHit:
			b.WriteByte('g')
		case game.MarkPresent:
			b.WriteByte('y')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
