// Package score implements the guess heuristic over a freq.Model.
//
// Each letter contributes a position-specific term (how likely it is to be
// in the right slot) and a general term (how likely it is to be in the word
// at all). A repeated letter earns reduced weights.
package score

import (
	"errors"
	"fmt"
	"math"

	"github.com/robalobadob/wordle/apps/solver/internal/freq"
)

// Weights applied per letter occurrence.
const (
	FirstSpecific  = 15.0
	FirstGeneral   = 12.0
	RepeatSpecific = 6.0
	RepeatGeneral  = 4.0
)

var (
	ErrWordLength = errors.New("score: word must be 5 letters")
	ErrNonFinite  = errors.New("score: non-finite score")
)

// Score returns the heuristic value of word under m. It has no side effects.
func Score(word string, m *freq.Model) (float64, error) {
	if len(word) != freq.Slots {
		return 0, fmt.Errorf("%w: %q", ErrWordLength, word)
	}

	var seen [256]bool
	specific, general := 0.0, 0.0
	for i := 0; i < freq.Slots; i++ {
		c := word[i]
		pos, err := m.Positional(c, i)
		if err != nil {
			return 0, err
		}
		agg := m.Aggregate(c)
		if seen[c] {
			specific += pos * RepeatSpecific
			general += agg * RepeatGeneral
		} else {
			specific += pos * FirstSpecific
			general += agg * FirstGeneral
			seen[c] = true
		}
	}

	return finite(word, specific+general)
}

// finite rejects NaN and ±Inf totals.
func finite(word string, s float64) (float64, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNonFinite, word)
	}
	return s, nil
}
