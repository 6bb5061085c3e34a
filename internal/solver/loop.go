// internal/solver/loop.go
//
// SolverLoop: Ready → Scoring → AwaitingFeedback → Filtering → Ready | Terminated.
//
// The candidate pool is the only state carried between rounds. Each round a
// fresh frequency model is built from the pool and the full guess vocabulary
// is ranked against it. Feedback records are applied once and discarded.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/freq"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrState is returned when an operation is called in the wrong state.
var ErrState = errors.New("solver: operation not valid in current state")

// Observer receives round and termination events (metrics).
type Observer interface {
	ObserveRound(pool int, took time.Duration)
	ObserveTermination(reason string)
}

// Options configures a Loop.
type Options struct {
	Search    search.Options
	Top       int // ranked guesses returned per round; 0 returns all
	MaxRounds int // 0 means no limit
	Observer  Observer
}

// Loop is one solving session. It is safe for concurrent use.
type Loop struct {
	mu      sync.Mutex
	guesses []string
	opts    Options
	pool    []string
	state   State
	round   int
	ranked  []search.ScoredGuess
	outcome Outcome
}

// New starts a session in Ready with the full answer corpus as its pool.
func New(lists *words.Lists, opts Options) *Loop {
	return &Loop{
		guesses: lists.Guesses,
		opts:    opts,
		pool:    append([]string(nil), lists.Answers...),
		state:   Ready,
		outcome: Outcome{Pool: len(lists.Answers), State: Ready},
	}
}

// Rank scores the guess vocabulary against the current pool.
// Calling Rank again while awaiting feedback returns the same ranking.
func (l *Loop) Rank(ctx context.Context) ([]search.ScoredGuess, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case AwaitingFeedback:
		return l.ranked, nil
	case Ready:
	default:
		return nil, fmt.Errorf("%w: rank in %s", ErrState, l.state)
	}

	l.state = Scoring
	start := time.Now()
	ranked, err := RankPool(ctx, l.pool, l.guesses, l.opts)
	if err != nil {
		l.state = Ready
		return nil, err
	}

	l.round++
	l.ranked = ranked
	l.state = AwaitingFeedback
	took := time.Since(start)
	if l.opts.Observer != nil {
		l.opts.Observer.ObserveRound(len(l.pool), took)
	}
	ev := log.Debug().Int("round", l.round).Int("pool", len(l.pool)).Dur("took", took)
	if len(ranked) > 0 {
		ev = ev.Str("best", ranked[0].Word).Float64("score", ranked[0].Score)
	}
	ev.Msg("round ranked")
	return ranked, nil
}

// Apply filters the pool with rec and moves to Ready or Terminated.
func (l *Loop) Apply(ctx context.Context, rec constraint.Record) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != AwaitingFeedback {
		return l.outcome, fmt.Errorf("%w: apply in %s", ErrState, l.state)
	}
	if err := ctx.Err(); err != nil {
		return l.outcome, err
	}

	l.state = Filtering
	before := len(l.pool)
	l.pool = constraint.Filter(l.pool, rec)

	out := Outcome{Round: l.round, Pool: len(l.pool)}
	reason := ""
	switch {
	case len(l.pool) == 0:
		out.Exhausted = true
		reason = ReasonExhausted
	case len(l.pool) == 1:
		out.Solved = l.pool[0]
		reason = ReasonSolved
	case l.opts.MaxRounds > 0 && l.round >= l.opts.MaxRounds:
		out.Limited = true
		reason = ReasonRoundLimit
	}
	if reason != "" {
		l.state = Terminated
		if l.opts.Observer != nil {
			l.opts.Observer.ObserveTermination(reason)
		}
	} else {
		l.state = Ready
	}
	out.State = l.state
	l.outcome = out

	log.Debug().
		Int("round", l.round).
		Int("before", before).
		Int("after", len(l.pool)).
		Str("feedback", rec.String()).
		Str("state", l.state.String()).
		Msg("pool filtered")
	return out, nil
}

// RankPool builds a model from pool and ranks guesses against it, keeping
// at most opts.Top results. It holds no loop state.
func RankPool(ctx context.Context, pool, guesses []string, opts Options) ([]search.ScoredGuess, error) {
	m, err := freq.Build(pool)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}
	ranked, err := search.Run(ctx, guesses, m, opts.Search)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if opts.Top > 0 && len(ranked) > opts.Top {
		ranked = ranked[:opts.Top]
	}
	return ranked, nil
}

// State returns the current state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Outcome returns the outcome of the last Filtering step.
func (l *Loop) Outcome() Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outcome
}

// Pool returns a copy of the current candidate pool.
func (l *Loop) Pool() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.pool...)
}

// Round returns the number of rankings produced so far.
func (l *Loop) Round() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.round
}
