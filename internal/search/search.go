// internal/search/search.go
//
// Parallel top-K guess search.
//
// The vocabulary is split into K contiguous windows of floor(len/K) words.
// Each window is scanned by its own goroutine which keeps a private Top3 and
// reports it exactly once on a completion channel. The orchestrator waits for
// every report, concatenates them and sorts once, best first.
//
// Known properties, kept on purpose:
//   - Remainder words (len mod K) are not scanned unless Options.KeepTail is set.
//   - The global #1 is exact over the scanned windows. #2/#3 are lost when a
//     single window holds four or more of the true top scorers.
//   - Ties across windows are ordered by report arrival, which is not stable
//     between runs.
package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/score"
)

var (
	ErrWorkers       = errors.New("search: worker count must be positive")
	ErrWorkerLost    = errors.New("search: worker exited without reporting")
	ErrWorkerTimeout = errors.New("search: timed out waiting for workers")
)

// checkEvery is how many words a worker scores between context checks.
const checkEvery = 256

// Options configures one search round.
type Options struct {
	Workers  int           // K; clamped to len(vocab) when larger
	KeepTail bool          // assign the remainder to the last window
	Timeout  time.Duration // 0 waits for as long as ctx allows
}

// Window is a half-open range [Start, End) of the vocabulary.
type Window struct {
	Start, End int
}

// Partition splits n words into k windows of floor(n/k) words each.
// With keepTail the last window is extended to n; otherwise the remainder
// is left out.
func Partition(n, k int, keepTail bool) ([]Window, error) {
	if k <= 0 {
		return nil, ErrWorkers
	}
	size := n / k
	out := make([]Window, k)
	for i := range out {
		out[i] = Window{Start: i * size, End: (i + 1) * size}
	}
	if keepTail {
		out[k-1].End = n
	}
	return out, nil
}

// Run scores vocab under m across opts.Workers goroutines and returns the
// merged per-window top-3 results, best first.
func Run(ctx context.Context, vocab []string, m *freq.Model, opts Options) ([]ScoredGuess, error) {
	if opts.Workers <= 0 {
		return nil, ErrWorkers
	}
	if len(vocab) == 0 {
		return nil, nil
	}
	k := min(opts.Workers, len(vocab))
	windows, err := Partition(len(vocab), k, opts.KeepTail)
	if err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	reports := make(chan []ScoredGuess, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range windows {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: window [%d,%d): %v", ErrWorkerLost, w.Start, w.End, r)
				}
			}()
			top, err := scan(gctx, vocab[w.Start:w.End], m)
			if err != nil {
				return err
			}
			reports <- top.Results()
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(reports)
	}()

	merged := make([]ScoredGuess, 0, 3*len(windows))
	received := 0
collect:
	for {
		select {
		case top, ok := <-reports:
			if !ok {
				break collect
			}
			received++
			merged = append(merged, top...)
		case <-ctx.Done():
			return nil, expired(ctx, received, len(windows))
		}
	}
	if err := <-done; err != nil {
		// Workers that saw the deadline first report it as their own error.
		if ctx.Err() != nil {
			return nil, expired(ctx, received, len(windows))
		}
		return nil, err
	}
	if received != len(windows) {
		return nil, fmt.Errorf("%w: %d of %d reported", ErrWorkerLost, received, len(windows))
	}

	slices.SortStableFunc(merged, func(a, b ScoredGuess) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	scanned := windows[len(windows)-1].End
	log.Debug().
		Int("vocab", len(vocab)).
		Int("workers", len(windows)).
		Int("dropped", len(vocab)-scanned).
		Dur("took", time.Since(start)).
		Msg("search complete")
	return merged, nil
}

// scan scores every word of one window into a private Top3.
// expired maps a done ctx onto ErrWorkerTimeout or the cancellation error.
func expired(ctx context.Context, received, windows int) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %d of %d reported", ErrWorkerTimeout, received, windows)
	}
	return ctx.Err()
}

func scan(ctx context.Context, words []string, m *freq.Model) (*Top3, error) {
	top := &Top3{}
	for i, w := range words {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s, err := score.Score(w, m)
		if err != nil {
			return nil, err
		}
		top.Offer(ScoredGuess{Word: w, Score: s})
	}
	return top, nil
}
