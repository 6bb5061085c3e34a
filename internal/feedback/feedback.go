// internal/feedback/feedback.go
//
// Parses feedback tokens typed by a player into a constraint.Record.
//
// Token syntax (positions are 1-indexed, slots are 0-indexed):
//   {1-5}{letter}   letter is at that position          → KnownAt
//   !{1-5}{letter}  letter is present, not at position  → ExistsAt + Somewhere
//   !{letter}       letter is absent                     → Excluded
//   ?{letter}       letter is present, position unknown  → Somewhere
//
// Tokens are separated by whitespace or commas and are case-insensitive.
package feedback

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
)

// ErrToken is returned for a token that matches none of the forms above.
var ErrToken = errors.New("feedback: invalid token")

var tokenRE = regexp.MustCompile(`^(!|\?)?([1-5])?([a-z])$`)

// Parse splits input into tokens and parses them.
func Parse(input string) (constraint.Record, error) {
	return ParseTokens(strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}))
}

// ParseTokens parses each token into one Record.
func ParseTokens(tokens []string) (constraint.Record, error) {
	var rec constraint.Record
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		m := tokenRE.FindStringSubmatch(tok)
		if m == nil {
			return constraint.Record{}, fmt.Errorf("%w: %q", ErrToken, tok)
		}
		prefix, pos, c := m[1], m[2], m[3][0]
		switch {
		case prefix == "" && pos != "":
			rec.Place(c, int(pos[0]-'1'))
		case prefix == "!" && pos != "":
			rec.Misplace(c, int(pos[0]-'1'))
		case prefix == "!":
			rec.Exclude(c)
		case prefix == "?" && pos == "":
			rec.Require(c)
		default:
			return constraint.Record{}, fmt.Errorf("%w: %q", ErrToken, tok)
		}
	}
	return rec, nil
}
