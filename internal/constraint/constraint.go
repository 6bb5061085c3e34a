// internal/constraint/constraint.go
//
// Feedback records and the candidate-pool filter.
//
// A Record carries one round of feedback:
//   - Excluded:  letters confirmed absent from the answer.
//   - Somewhere: letters confirmed present, position unknown.
//   - ExistsAt:  per slot, a letter that is present but not at that slot.
//   - KnownAt:   per slot, the letter confirmed at that slot.
//
// Filter keeps the candidates consistent with one Record. Records are not
// accumulated; each round's Record is applied to the already-narrowed pool.
package constraint

import (
	"strings"

	"github.com/samber/lo"
)

// Slots is the fixed word length.
const Slots = 5

// Record is the structured feedback for one round. The zero value matches
// every candidate. A letter 0 in ExistsAt/KnownAt means "unset".
type Record struct {
	Excluded  map[byte]struct{}
	Somewhere map[byte]struct{}
	ExistsAt  [Slots]byte
	KnownAt   [Slots]byte
}

// Exclude marks c as absent.
func (r *Record) Exclude(c byte) {
	if r.Excluded == nil {
		r.Excluded = make(map[byte]struct{})
	}
	r.Excluded[c] = struct{}{}
}

// Require marks c as present somewhere.
func (r *Record) Require(c byte) {
	if r.Somewhere == nil {
		r.Somewhere = make(map[byte]struct{})
	}
	r.Somewhere[c] = struct{}{}
}

// Misplace marks c as present but not at slot i. It also requires c.
// The last write to a slot wins.
func (r *Record) Misplace(c byte, i int) {
	r.ExistsAt[i] = c
	r.Require(c)
}

// Place marks c as the letter at slot i. The last write to a slot wins.
func (r *Record) Place(c byte, i int) {
	r.KnownAt[i] = c
}

// Empty reports whether the record carries no constraint.
func (r Record) Empty() bool {
	return len(r.Excluded) == 0 && len(r.Somewhere) == 0 &&
		r.ExistsAt == [Slots]byte{} && r.KnownAt == [Slots]byte{}
}

// String renders the record in the feedback token syntax (1-indexed slots).
func (r Record) String() string {
	var parts []string
	for i, c := range r.KnownAt {
		if c != 0 {
			parts = append(parts, string(rune('1'+i))+string(c))
		}
	}
	for i, c := range r.ExistsAt {
		if c != 0 {
			parts = append(parts, "!"+string(rune('1'+i))+string(c))
		}
	}
	for _, c := range sortedLetters(r.Somewhere) {
		if !lo.Contains(r.ExistsAt[:], c) {
			parts = append(parts, "?"+string(c))
		}
	}
	for _, c := range sortedLetters(r.Excluded) {
		parts = append(parts, "!"+string(c))
	}
	return strings.Join(parts, " ")
}

// Matches reports whether word is consistent with r.
func (r Record) Matches(word string) bool {
	for c := range r.Excluded {
		if strings.IndexByte(word, c) >= 0 {
			return false
		}
	}
	for c := range r.Somewhere {
		if strings.IndexByte(word, c) < 0 {
			return false
		}
	}
	for i := 0; i < Slots && i < len(word); i++ {
		if c := r.ExistsAt[i]; c != 0 && word[i] == c {
			return false
		}
	}
	for i := 0; i < Slots; i++ {
		if c := r.KnownAt[i]; c != 0 && (i >= len(word) || word[i] != c) {
			return false
		}
	}
	return true
}

// Filter returns the words of pool consistent with r, preserving order.
// It is idempotent: Filter(Filter(p, r), r) equals Filter(p, r).
func Filter(pool []string, r Record) []string {
	return lo.Filter(pool, func(w string, _ int) bool {
		return r.Matches(w)
	})
}

func sortedLetters(set map[byte]struct{}) []byte {
	var out []byte
	for c := byte('a'); c <= 'z'; c++ {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
