package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	d := time.Date(2026, 10, 16, 5, 0, 0, 0, loc)
	assert.Equal(t, "2026-10-15", DateKey(d))
}

func TestWordIndexDeterministic(t *testing.T) {
	d := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 479)
	assert.Equal(t, a, WordIndex(d.Add(time.Hour), "salt", 479))
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 479)
	assert.Zero(t, WordIndex(d, "salt", 0))
}

func TestAnswer(t *testing.T) {
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	answers := []string{"crane", "slate", "apple"}
	got := Answer(d, "x", answers)
	assert.Contains(t, answers, got)
	assert.Empty(t, Answer(d, "x", nil))
}
