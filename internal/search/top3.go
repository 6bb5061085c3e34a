package search

// ScoredGuess pairs a word with its heuristic score.
type ScoredGuess struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Top3 keeps the three best guesses offered to it, best first.
// An offer displaces a holder only when its score is strictly greater, so on
// ties the guess offered first keeps its slot.
type Top3 struct {
	slots [3]ScoredGuess
	n     int
}

// Offer inserts g if it beats (or fills) one of the three slots.
func (t *Top3) Offer(g ScoredGuess) {
	for i := 0; i < len(t.slots); i++ {
		if i >= t.n || g.Score > t.slots[i].Score {
			copy(t.slots[i+1:], t.slots[i:len(t.slots)-1])
			t.slots[i] = g
			if t.n < len(t.slots) {
				t.n++
			}
			return
		}
	}
}

// Results returns the held guesses, best first.
func (t *Top3) Results() []ScoredGuess {
	out := make([]ScoredGuess, t.n)
	copy(out, t.slots[:t.n])
	return out
}

// Len reports how many slots are filled.
func (t *Top3) Len() int { return t.n }
