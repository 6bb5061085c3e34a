package freq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCountsEverySlot(t *testing.T) {
	m, err := Build([]string{"crane", "crate", "slate"})
	require.NoError(t, err)

	first, err := m.Slot(0)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total())
	assert.Equal(t, 2, first.Count('c'))
	assert.Equal(t, 1, first.Count('s'))

	f, err := m.Positional('e', 4)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 1e-9)

	assert.Equal(t, 15, m.Total())
	assert.InDelta(t, 3.0/15.0, m.Aggregate('a'), 1e-9)
	assert.InDelta(t, 2.0/15.0, m.Aggregate('c'), 1e-9)
}

func TestBuildRejectsWholeCorpusOnBadLength(t *testing.T) {
	for _, corpus := range [][]string{
		{"crane", "cranes"},
		{"crane", "cran"},
		{""},
	} {
		m, err := Build(corpus)
		assert.ErrorIs(t, err, ErrWordLength, "corpus %v", corpus)
		assert.Nil(t, m)
	}
}

func TestBuildRejectsNonLetters(t *testing.T) {
	_, err := Build([]string{"CRANE"})
	assert.ErrorIs(t, err, ErrLetter)

	_, err = Build([]string{"cr4ne"})
	assert.ErrorIs(t, err, ErrLetter)
}

func TestEmptyModelYieldsZero(t *testing.T) {
	m, err := Build(nil)
	require.NoError(t, err)

	for c := byte('a'); c <= 'z'; c++ {
		assert.Zero(t, m.Aggregate(c))
		for i := 0; i < Slots; i++ {
			f, err := m.Positional(c, i)
			require.NoError(t, err)
			assert.Zero(t, f)
		}
	}
}

func TestPositionalFrequenciesSumToOne(t *testing.T) {
	m, err := Build([]string{"apple", "angle", "ankle", "crane", "slate", "sassy"})
	require.NoError(t, err)

	for i := 0; i < Slots; i++ {
		d, err := m.Slot(i)
		require.NoError(t, err)
		sum := 0.0
		for _, c := range d.Letters() {
			f, err := m.Positional(c, i)
			require.NoError(t, err)
			sum += f
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "slot %d", i)
	}
}

func TestSlotOutOfRange(t *testing.T) {
	m, err := Build([]string{"abcde"})
	require.NoError(t, err)

	for _, slot := range []int{-1, 5, 42} {
		_, err := m.Positional('a', slot)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSlotRange))

		var se *SlotError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, slot, se.Slot)
	}
}

func TestDistributionIgnoresNonLetters(t *testing.T) {
	var d Distribution
	d.Add('A')
	d.Add('-')
	d.Add('q')
	assert.Equal(t, 1, d.Total())
	assert.Zero(t, d.Count('A'))
	assert.InDelta(t, 1.0, d.Frequency('q'), 1e-9)
	assert.Equal(t, []byte{'q'}, d.Letters())
}
