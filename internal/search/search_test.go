package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/score"
)

func mustModel(t *testing.T, corpus ...string) *freq.Model {
	t.Helper()
	m, err := freq.Build(corpus)
	require.NoError(t, err)
	return m
}

func words(gs []ScoredGuess) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Word
	}
	return out
}

func TestTop3OrderedInsertion(t *testing.T) {
	var top Top3
	for _, g := range []ScoredGuess{
		{"aaaaa", 1}, {"bbbbb", 5}, {"ccccc", 3}, {"ddddd", 4}, {"eeeee", 2},
	} {
		top.Offer(g)
	}
	assert.Equal(t, 3, top.Len())
	assert.Equal(t, []string{"bbbbb", "ddddd", "ccccc"}, words(top.Results()))
}

func TestTop3TiesKeepFirstHolder(t *testing.T) {
	var top Top3
	top.Offer(ScoredGuess{"first", 2})
	top.Offer(ScoredGuess{"secnd", 2})
	top.Offer(ScoredGuess{"third", 2})
	top.Offer(ScoredGuess{"forth", 2})
	assert.Equal(t, []string{"first", "secnd", "third"}, words(top.Results()))
}

func TestTop3Partial(t *testing.T) {
	var top Top3
	assert.Empty(t, top.Results())
	top.Offer(ScoredGuess{"solo", 0})
	assert.Equal(t, []string{"solo"}, words(top.Results()))
}

func TestPartition(t *testing.T) {
	tests := []struct {
		n, k     int
		keepTail bool
		want     []Window
	}{
		{10, 3, false, []Window{{0, 3}, {3, 6}, {6, 9}}},
		{10, 3, true, []Window{{0, 3}, {3, 6}, {6, 10}}},
		{9, 3, false, []Window{{0, 3}, {3, 6}, {6, 9}}},
		{4, 1, false, []Window{{0, 4}}},
	}
	for _, tt := range tests {
		got, err := Partition(tt.n, tt.k, tt.keepTail)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%d k=%d tail=%v", tt.n, tt.k, tt.keepTail)
	}

	_, err := Partition(10, 0, false)
	assert.ErrorIs(t, err, ErrWorkers)
}

func TestRunSingleWorkerMatchesExhaustiveScan(t *testing.T) {
	corpus := []string{"crane", "slate", "trace", "crate", "react", "later", "alert", "stare"}
	vocab := append([]string{"zesty", "pious", "mummy", "adieu"}, corpus...)
	m := mustModel(t, corpus...)

	got, err := Run(context.Background(), vocab, m, Options{Workers: 1})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	best, bestScore := "", -1.0
	for _, w := range vocab {
		s, err := score.Score(w, m)
		require.NoError(t, err)
		if s > bestScore {
			best, bestScore = w, s
		}
	}
	assert.Equal(t, best, got[0].Word)
	assert.InDelta(t, bestScore, got[0].Score, 1e-9)
	assert.Len(t, got, 3)
}

func TestRunManyWorkersFindsGlobalBest(t *testing.T) {
	corpus := []string{"crane", "slate", "trace", "crate", "react", "later", "alert", "stare"}
	var vocab []string
	for i := 0; i < 40; i++ {
		vocab = append(vocab, corpus[i%len(corpus)])
		vocab = append(vocab, fmt.Sprintf("%c%c%c%c%c", 'v'+i%4, 'w', 'x', 'y', 'z'))
	}
	m := mustModel(t, corpus...)

	single, err := Run(context.Background(), vocab, m, Options{Workers: 1})
	require.NoError(t, err)
	multi, err := Run(context.Background(), vocab, m, Options{Workers: 4})
	require.NoError(t, err)

	assert.InDelta(t, single[0].Score, multi[0].Score, 1e-9)
	assert.LessOrEqual(t, len(multi), 3*4)
	for i := 1; i < len(multi); i++ {
		assert.GreaterOrEqual(t, multi[i-1].Score, multi[i].Score)
	}
}

// One window holding the four best words loses the fourth to its own cap.
func TestRunLosesFourthBestInSameWindow(t *testing.T) {
	m := mustModel(t, "abcde")
	vocab := []string{
		// window 0: the four highest-scoring words
		"abcde", "abcdz", "abczz", "abzzz",
		// window 1
		"azzzz", "zzzzz", "yzzzz", "xzzzz",
	}

	got, err := Run(context.Background(), vocab, m, Options{Workers: 2})
	require.NoError(t, err)

	ranked := words(got)
	assert.Equal(t, []string{"abcde", "abcdz", "abczz", "azzzz"}, ranked[:4])
	assert.NotContains(t, ranked, "abzzz")
	assert.Len(t, got, 6)
}

func TestRunDropsTail(t *testing.T) {
	m := mustModel(t, "abcde")
	vocab := []string{"zzzzz", "yzzzz", "xzzzz", "wzzzz", "abcde"}

	got, err := Run(context.Background(), vocab, m, Options{Workers: 2})
	require.NoError(t, err)
	assert.NotContains(t, words(got), "abcde")

	got, err = Run(context.Background(), vocab, m, Options{Workers: 2, KeepTail: true})
	require.NoError(t, err)
	assert.Equal(t, "abcde", got[0].Word)
}

func TestRunClampsWorkersToVocabulary(t *testing.T) {
	m := mustModel(t, "abcde")
	got, err := Run(context.Background(), []string{"abcde", "zzzzz"}, m, Options{Workers: 16})
	require.NoError(t, err)
	assert.Equal(t, []string{"abcde", "zzzzz"}, words(got))
}

func TestRunErrors(t *testing.T) {
	m := mustModel(t, "abcde")

	_, err := Run(context.Background(), []string{"abcde"}, m, Options{})
	assert.ErrorIs(t, err, ErrWorkers)

	_, err = Run(context.Background(), []string{"abcde", "abc"}, m, Options{Workers: 1})
	assert.ErrorIs(t, err, score.ErrWordLength)

	got, err := Run(context.Background(), nil, m, Options{Workers: 4})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunHonoursCancelledContext(t *testing.T) {
	m := mustModel(t, "abcde")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []string{"abcde", "zzzzz", "yzzzz", "xzzzz"}, m, Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

// vocabOf returns n distinct five-letter words.
func vocabOf(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		b := []byte("aaaaa")
		for j, v := 4, i; j >= 0 && v > 0; j, v = j-1, v/26 {
			b[j] = byte('a' + v%26)
		}
		out = append(out, string(b))
	}
	return out
}

func TestRunTimeoutReportsWorkerTimeout(t *testing.T) {
	m := mustModel(t, "abcde", "crane")
	_, err := Run(context.Background(), vocabOf(50000), m, Options{Workers: 2, Timeout: time.Nanosecond})
	assert.ErrorIs(t, err, ErrWorkerTimeout)
}

func TestRunRecoversWorkerPanic(t *testing.T) {
	// A nil model panics inside the scoring loop.
	_, err := Run(context.Background(), []string{"abcde", "crane", "slate", "pious"}, nil, Options{Workers: 2})
	assert.ErrorIs(t, err, ErrWorkerLost)
}

func TestExpired(t *testing.T) {
	dl, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	assert.ErrorIs(t, expired(dl, 1, 2), ErrWorkerTimeout)

	cc, cancel2 := context.WithCancel(context.Background())
	cancel2()
	err := expired(cc, 0, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrWorkerTimeout)
}
