// internal/words/words.go
//
// Provides word list loading for the solver.
//
// Responsibilities:
//   - Load answer and allowed guess lists from a SQLite lexicon, from files,
//     or fall back to the embedded defaults in assets.
//   - Normalize lists to lowercase 5-letter a–z words.
//   - Guarantee every answer is also a legal guess.
//
// Word Lists:
//   - "answers": the candidate-answer corpus (duplicates are kept).
//   - "guesses": the guess vocabulary, ordered; optionally de-duplicated.
//
// Source resolution (Load):
//   1. If Source.DB is set, read both lists from the lexicon database.
//   2. If AnswersFile and AllowedFile are both set, read one list from each.
//   3. If only AllowedFile is set, use that file for both lists.
//   4. Otherwise use the embedded defaults.
//
// Lists are loaded once by the caller and passed by reference; this package
// keeps no package-level state.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/lexicon"
)

// Length is the only supported word length.
const Length = 5

// ErrEmpty is returned when the answers list ends up empty.
var ErrEmpty = errors.New("words: answers list is empty")

// Source selects where word lists come from.
type Source struct {
	DB            string // SQLite lexicon path
	AnswersFile   string
	AllowedFile   string
	UniqueGuesses bool // drop repeated words from the guess vocabulary
}

// Lists holds the loaded answer corpus and guess vocabulary.
type Lists struct {
	Answers []string
	Guesses []string

	answersSet map[string]struct{}
	guessSet   map[string]struct{}
}

// New builds Lists from already-normalized slices. Every answer is appended
// to the guess vocabulary if missing.
func New(answers, allowed []string, unique bool) *Lists {
	l := &Lists{
		Answers:    answers,
		answersSet: toSet(answers),
		guessSet:   toSet(allowed),
	}
	guesses := append([]string{}, allowed...)
	for _, w := range answers {
		if _, ok := l.guessSet[w]; !ok {
			guesses = append(guesses, w)
			l.guessSet[w] = struct{}{}
		}
	}
	if unique {
		guesses = lo.Uniq(guesses)
	}
	l.Guesses = guesses
	return l
}

// Load resolves src and returns the word lists.
// Returns an error if the answers list ends up empty.
func Load(ctx context.Context, src Source) (*Lists, error) {
	var ansList, allowList []string
	var origin string

	switch {
	// Case 1: lexicon database
	case src.DB != "":
		store, err := lexicon.Open(src.DB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		if ansList, err = store.Answers(ctx); err != nil {
			return nil, err
		}
		if allowList, err = store.Allowed(ctx); err != nil {
			return nil, err
		}
		ansList, allowList = normalize(ansList), normalize(allowList)
		origin = "db"

	// Case 2: both lists provided
	case src.AnswersFile != "" && src.AllowedFile != "":
		var err error
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		origin = "files"

	// Case 3: only allowed file provided → use for both
	case src.AllowedFile != "":
		var err error
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList
		origin = "allowed-file"

	// Case 4: fallback to embedded defaults
	default:
		var err error
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, err
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, err
		}
		ansList, allowList = normalize(ansList), normalize(allowList)
		origin = "embedded"
	}

	if len(ansList) == 0 {
		return nil, ErrEmpty
	}
	l := New(ansList, allowList, src.UniqueGuesses)
	log.Info().
		Str("source", origin).
		Int("answers", len(l.Answers)).
		Int("guesses", len(l.Guesses)).
		Msg("word lists loaded")
	return l, nil
}

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := Normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalize keeps the valid words of list, lowercased.
func normalize(list []string) []string {
	return lo.FilterMap(list, func(s string, _ int) (string, bool) {
		return Normalize(s)
	})
}

// Normalize trims and lowercases s and reports whether it is a valid word.
func Normalize(s string) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(s))
	return w, len(w) == Length && isAlpha(w)
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// IsAllowed reports whether w is a valid guess (answers ∪ allowed).
func (l *Lists) IsAllowed(w string) bool {
	_, ok := l.guessSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *Lists) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, guesses).
func (l *Lists) Stats() (answersCount int, guessCount int) {
	return len(l.Answers), len(l.Guesses)
}
