// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     JSON content type, per-client rate limiting).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Solver endpoints (bearer auth when a JWT secret is configured):
//     POST /rank, /sessions/*, GET /daily.
//
// Notes:
//   - Sessions are held in memory only (internal/store).
//   - Every ranking goes through the same parallel search as the CLI.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options carries the server's dependencies.
type Options struct {
	Lists   *words.Lists
	Store   store.Store
	Metrics *metrics.Registry
	Solver  solver.Options

	JWTSecret      string
	RateLimitRPS   int
	RateLimitBurst int
	DailySalt      string
	RequestTimeout time.Duration // default 10s
}

// Server bundles the router and its dependencies.
type Server struct {
	r       *chi.Mux
	opts    Options
	limiter *limiters
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Solver.Observer == nil {
		opts.Solver.Observer = opts.Metrics
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	s := &Server{
		r:       chi.NewRouter(),
		opts:    opts,
		limiter: newLimiters(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.RequestTimeout))
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/metrics","POST /rank","POST /sessions","GET /daily"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := opts.Lists.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "guesses": g})
	})

	// --- solver API ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.limiter.rateLimit)
		if opts.JWTSecret != "" {
			r.Use(requireAuth(opts.JWTSecret))
		}
		r.Post("/rank", s.handleRank)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleNewSession)
			r.Get("/{id}", s.handleGetSession)
			r.Post("/{id}/feedback", s.handleFeedback)
			r.Delete("/{id}", s.handleDeleteSession)
		})
		s.mountDaily(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
// Idle sessions and rate-limit buckets are swept every minute while serving.
func (s *Server) Serve(ctx context.Context, addr string, sessionTTL time.Duration) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.sweep(ctx, time.Minute, sessionTTL)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("solver api listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("solver api stopped")
	return nil
}

// limiterIdle is how long a client's rate-limit bucket outlives its last request.
const limiterIdle = 10 * time.Minute

func (s *Server) sweep(ctx context.Context, every, ttl time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweepOnce(ctx, ttl)
		}
	}
}

// sweepOnce drops idle sessions (when ttl > 0) and idle rate-limit buckets.
func (s *Server) sweepOnce(ctx context.Context, ttl time.Duration) {
	if ttl > 0 {
		n := s.opts.Store.Sweep(ctx, ttl)
		for i := 0; i < n; i++ {
			s.opts.Metrics.SessionClosed()
		}
		if n > 0 {
			log.Info().Int("swept", n).Int("active", s.opts.Store.Len()).Msg("idle sessions dropped")
		}
	}
	if n := s.limiter.prune(limiterIdle); n > 0 {
		log.Debug().Int("pruned", n).Msg("idle rate limiters dropped")
	}
}

// ------------------------------ RANK ---------------------------------------

// rankReq/Res payloads for POST /rank.
type rankReq struct {
	Feedback []string `json:"feedback"` // tokens, e.g. ["1a", "!3p", "!e"]
	Top      int      `json:"top"`
}
type rankRes struct {
	Pool       int                  `json:"pool"`
	Candidates []string             `json:"candidates,omitempty"` // listed when the pool is small
	Ranked     []search.ScoredGuess `json:"ranked"`
}

const listCandidatesBelow = 20

// handleRank ranks the guess vocabulary against the answer corpus filtered by
// the given feedback. It keeps no state.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	rec, err := feedback.ParseTokens(req.Feedback)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	pool := constraint.Filter(s.opts.Lists.Answers, rec)
	res := rankRes{Pool: len(pool), Ranked: []search.ScoredGuess{}}
	if len(pool) <= listCandidatesBelow {
		res.Candidates = pool
	}
	if len(pool) == 0 {
		writeJSON(w, http.StatusOK, res)
		return
	}

	opts := s.opts.Solver
	if req.Top > 0 {
		opts.Top = req.Top
	}
	ranked, err := solver.RankPool(r.Context(), pool, s.opts.Lists.Guesses, opts)
	if err != nil {
		s.searchFailed(w, err)
		return
	}
	res.Ranked = ranked
	writeJSON(w, http.StatusOK, res)
}

// searchFailed maps search errors onto HTTP statuses.
func (s *Server) searchFailed(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, search.ErrWorkerTimeout), errors.Is(err, context.DeadlineExceeded):
		writeErr(w, http.StatusServiceUnavailable, "search_timeout")
	case errors.Is(err, context.Canceled):
		writeErr(w, http.StatusServiceUnavailable, "cancelled")
	default:
		log.Error().Err(err).Msg("search failed")
		writeErr(w, http.StatusInternalServerError, "search_failed")
	}
}
