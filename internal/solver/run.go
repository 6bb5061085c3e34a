package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	// ErrStop is returned by a FeedbackSource to end the session early.
	ErrStop = errors.New("solver: stopped by feedback source")

	// ErrNoGuess is returned when a round produced nothing to play.
	ErrNoGuess = errors.New("solver: no guess available")
)

// FeedbackSource supplies the feedback for the guess the caller played.
// Next blocks until feedback is available.
type FeedbackSource interface {
	Next(ctx context.Context, round int, ranked []search.ScoredGuess) (constraint.Record, error)
}

// Run drives l until it terminates, ctx is done, or src returns an error.
// A source returning ErrStop ends the run without error.
func Run(ctx context.Context, l *Loop, src FeedbackSource) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return l.Outcome(), err
		}
		ranked, err := l.Rank(ctx)
		if err != nil {
			return l.Outcome(), err
		}
		rec, err := src.Next(ctx, l.Round(), ranked)
		if errors.Is(err, ErrStop) {
			return l.Outcome(), nil
		}
		if err != nil {
			return l.Outcome(), err
		}
		out, err := l.Apply(ctx, rec)
		if err != nil {
			return out, err
		}
		if out.Done() {
			return out, nil
		}
	}
}

// DefaultPlayRounds bounds a simulated game when no limit is configured.
const DefaultPlayRounds = 6

// Step is one simulated guess.
type Step struct {
	Guess string      `json:"guess"`
	Marks []game.Mark `json:"marks"`
	Pool  int         `json:"pool"` // pool size before this guess was filtered
}

// PlayResult is the full path of a simulated game.
type PlayResult struct {
	Answer  string  `json:"answer"`
	Steps   []Step  `json:"steps"`
	Won     bool    `json:"won"`
	Outcome Outcome `json:"outcome"`
}

// Play auto-plays answer: each round it guesses the best-ranked word not
// yet played, marks it against answer, and feeds the resulting record back.
func Play(ctx context.Context, lists *words.Lists, answer string, opts Options) (*PlayResult, error) {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultPlayRounds
	}
	l := New(lists, opts)
	sim := &simulator{
		game:   game.New(answer, opts.MaxRounds+1),
		loop:   l,
		played: map[string]bool{},
	}

	out, err := Run(ctx, l, sim)
	if err != nil {
		return nil, err
	}
	// Knowing the only candidate still takes one guess to win.
	if out.Solved != "" && !sim.game.Won && !sim.played[out.Solved] {
		marks, _, err := sim.game.ApplyGuess(out.Solved)
		if err != nil {
			return nil, err
		}
		sim.steps = append(sim.steps, Step{Guess: out.Solved, Marks: marks, Pool: out.Pool})
	}

	res := &PlayResult{
		Answer:  sim.game.Answer,
		Steps:   sim.steps,
		Won:     sim.game.Won,
		Outcome: out,
	}
	log.Info().
		Str("answer", res.Answer).
		Int("guesses", len(res.Steps)).
		Bool("won", res.Won).
		Msg("simulation finished")
	return res, nil
}

// simulator is a FeedbackSource backed by a known answer.
type simulator struct {
	game   *game.Game
	loop   *Loop
	played map[string]bool
	steps  []Step
}

func (s *simulator) Next(_ context.Context, _ int, ranked []search.ScoredGuess) (constraint.Record, error) {
	guess := ""
	for _, g := range ranked {
		if !s.played[g.Word] {
			guess = g.Word
			break
		}
	}
	pool := s.loop.Pool()
	if guess == "" {
		// Every ranked word was already tried; a candidate always shrinks the pool.
		for _, w := range pool {
			if !s.played[w] {
				guess = w
				break
			}
		}
	}
	if guess == "" {
		return constraint.Record{}, ErrNoGuess
	}

	marks, _, err := s.game.ApplyGuess(guess)
	if err != nil {
		return constraint.Record{}, fmt.Errorf("simulate %q: %w", guess, err)
	}
	s.played[guess] = true
	s.steps = append(s.steps, Step{Guess: guess, Marks: marks, Pool: len(pool)})
	return game.Record(guess, marks)
}
