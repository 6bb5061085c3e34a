// internal/game/engine.go
//
// Game engine used to simulate the feedback a real game would give.
// Responsibilities:
//   - Score guesses using the classic two‑pass Wordle algorithm.
//   - Convert one guess's marks into a constraint.Record.
//   - Track state transitions for a simulated game: playing → won/lost.
//
// Notes:
//   - A missed letter that is also hit/present elsewhere in the same guess
//     is recorded as "not at this slot" rather than excluded, so a Record
//     built here never holds a letter as both excluded and present.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
)

const (
	defaultRows = 6
	defaultCols = 5
)

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
	ErrPattern      = errors.New("invalid mark pattern")
)

// New constructs a new game for answer. rows <= 0 uses the default of 6.
func New(answer string, rows int) *Game {
	if rows <= 0 {
		rows = defaultRows
	}
	return &Game{
		Answer:  strings.ToLower(answer),
		Rows:    rows,
		Cols:    defaultCols,
		Guesses: []string{},
	}
}

// ApplyGuess scores a guess and mutates the game state.
// Returns the per‑letter marks, the new state string ("playing"/"won"/"lost"), or an error.
func (g *Game) ApplyGuess(guess string) ([]Mark, string, error) {
	if g.Finished {
		return nil, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return nil, g.State(), fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}

	marks := Score(g.Answer, guess)
	g.Guesses = append(g.Guesses, guess)

	if allHit(marks) {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return marks, g.State(), nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Score implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non‑hit) answer letters by letter index.
//
// Pass 2:
//   - For each non‑hit guess letter: if there is remaining count for that letter,
//     mark Present and decrement the count; otherwise mark Miss.
func Score(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	if len(answer) != n {
		for i := range res {
			res[i] = MarkMiss
		}
		return res
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else if j := idx(answer[i]); j >= 0 && j < 26 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// Record converts the marks of one guess into a feedback record.
func Record(guess string, marks []Mark) (constraint.Record, error) {
	if len(guess) != defaultCols || len(marks) != defaultCols {
		return constraint.Record{}, fmt.Errorf("%w: guess %q with %d marks", ErrPattern, guess, len(marks))
	}

	var present [256]bool
	for i, m := range marks {
		if m == MarkHit || m == MarkPresent {
			present[guess[i]] = true
		}
	}

	var rec constraint.Record
	for i, m := range marks {
		c := guess[i]
		switch m {
		case MarkHit:
			rec.Place(c, i)
		case MarkPresent:
			rec.Misplace(c, i)
		case MarkMiss:
			if present[c] {
				rec.Misplace(c, i)
			} else {
				rec.Exclude(c)
			}
		default:
			return constraint.Record{}, fmt.Errorf("%w: mark %q", ErrPattern, m)
		}
	}
	return rec, nil
}

// ParsePattern reads a compact mark pattern: one character per letter,
// '2'/'g' = hit, '1'/'y' = present, '0'/'b'/'.' = miss.
func ParsePattern(p string) ([]Mark, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	if len(p) != defaultCols {
		return nil, fmt.Errorf("%w: %q", ErrPattern, p)
	}
	out := make([]Mark, len(p))
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '2', 'g':
			out[i] = MarkHit
		case '1', 'y':
			out[i] = MarkPresent
		case '0', 'b', '.':
			out[i] = MarkMiss
		default:
			return nil, fmt.Errorf("%w: %q", ErrPattern, p)
		}
	}
	return out, nil
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'a' }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// allHit returns true if all marks are MarkHit.
func allHit(m []Mark) bool {
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}
