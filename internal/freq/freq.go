// internal/freq/freq.go
//
// Letter-frequency model for a candidate-answer corpus.
//
// A Model holds one Distribution per slot (0–4). The aggregate distribution
// is never stored; it is derived on demand as the sum of the five slots.
//
// Notes:
//   - Frequencies are count/total and are 0 when total is 0.
//   - Build rejects the whole corpus if any word is not exactly Slots letters.
//   - A Model is immutable once built and safe for concurrent readers.
package freq

import (
	"errors"
	"fmt"
)

// Slots is the fixed word length the model is built for.
const Slots = 5

var (
	// ErrWordLength is returned by Build when a corpus word is not Slots letters long.
	ErrWordLength = errors.New("freq: corpus word must be 5 letters")

	// ErrLetter is returned by Build when a corpus word contains a byte outside a–z.
	ErrLetter = errors.New("freq: corpus word must be lowercase a-z")

	// ErrSlotRange is matched by *SlotError via errors.Is.
	ErrSlotRange = errors.New("freq: slot out of range")
)

// SlotError reports a distribution lookup for a slot outside 0..Slots-1.
type SlotError struct {
	Slot int
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("freq: slot %d out of range [0,%d)", e.Slot, Slots)
}

// Is lets errors.Is(err, ErrSlotRange) match any SlotError.
func (e *SlotError) Is(target error) bool { return target == ErrSlotRange }

// Distribution counts observed letters a–z.
type Distribution struct {
	counts [26]int
	total  int
}

// Add records one observation of letter c. Letters outside a–z are ignored.
func (d *Distribution) Add(c byte) {
	if !isLetter(c) {
		return
	}
	d.counts[c-'a']++
	d.total++
}

// Count returns how often c was observed.
func (d *Distribution) Count(c byte) int {
	if !isLetter(c) {
		return 0
	}
	return d.counts[c-'a']
}

// Total returns the number of observations.
func (d *Distribution) Total() int { return d.total }

// Frequency returns Count(c)/Total(), or 0 for an empty distribution.
func (d *Distribution) Frequency(c byte) float64 {
	if d.total == 0 {
		return 0
	}
	return float64(d.Count(c)) / float64(d.total)
}

// Letters returns the letters with a non-zero count, in alphabetical order.
func (d *Distribution) Letters() []byte {
	var out []byte
	for i, n := range d.counts {
		if n > 0 {
			out = append(out, byte('a'+i))
		}
	}
	return out
}

// Model is the per-slot letter distribution of a corpus.
type Model struct {
	slots [Slots]Distribution
}

// Build counts every letter of every corpus word into its slot.
// Any invalid word fails the whole build; no partial model is returned.
func Build(corpus []string) (*Model, error) {
	m := &Model{}
	for _, w := range corpus {
		if len(w) != Slots {
			return nil, fmt.Errorf("%w: %q", ErrWordLength, w)
		}
		for i := 0; i < Slots; i++ {
			if !isLetter(w[i]) {
				return nil, fmt.Errorf("%w: %q", ErrLetter, w)
			}
		}
		for i := 0; i < Slots; i++ {
			m.slots[i].Add(w[i])
		}
	}
	return m, nil
}

// Slot returns the distribution for slot i.
func (m *Model) Slot(i int) (*Distribution, error) {
	if i < 0 || i >= Slots {
		return nil, &SlotError{Slot: i}
	}
	return &m.slots[i], nil
}

// Positional returns the frequency of letter c at slot i.
func (m *Model) Positional(c byte, i int) (float64, error) {
	d, err := m.Slot(i)
	if err != nil {
		return 0, err
	}
	return d.Frequency(c), nil
}

// Aggregate returns the frequency of letter c across all five slots.
func (m *Model) Aggregate(c byte) float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	count := 0
	for i := range m.slots {
		count += m.slots[i].Count(c)
	}
	return float64(count) / float64(total)
}

// Total returns the number of observations across all slots.
func (m *Model) Total() int {
	total := 0
	for i := range m.slots {
		total += m.slots[i].total
	}
	return total
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' }
