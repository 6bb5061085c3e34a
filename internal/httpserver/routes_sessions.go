// internal/httpserver/routes_sessions.go
//
// Interactive solver sessions:
//   - POST   /sessions               → new loop over the full corpus + first ranking
//   - GET    /sessions/{id}          → round, state, pool size (and candidates when small)
//   - POST   /sessions/{id}/feedback → apply one round of feedback, then rank again
//   - DELETE /sessions/{id}          → drop the session
//
// Feedback is either player tokens ({"tokens": ["1a", "!p"]}) or the guess
// with its mark pattern ({"guess": "crane", "marks": "20100"}).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/search"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// sessionRes describes a session after any operation.
type sessionRes struct {
	ID         string               `json:"id"`
	Round      int                  `json:"round"`
	State      solver.State         `json:"state"`
	Pool       int                  `json:"pool"`
	Candidates []string             `json:"candidates,omitempty"`
	Outcome    *solver.Outcome      `json:"outcome,omitempty"`
	Ranked     []search.ScoredGuess `json:"ranked,omitempty"`
}

func describe(id string, l *solver.Loop) sessionRes {
	pool := l.Pool()
	res := sessionRes{ID: id, Round: l.Round(), State: l.State(), Pool: len(pool)}
	if len(pool) <= listCandidatesBelow {
		res.Candidates = pool
	}
	return res
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	l := solver.New(s.opts.Lists, s.opts.Solver)
	ranked, err := l.Rank(r.Context())
	if err != nil {
		s.searchFailed(w, err)
		return
	}
	id, err := s.opts.Store.Create(r.Context(), l)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.opts.Metrics.SessionOpened()
	log.Info().Str("session", id).Str("subject", Subject(r)).Msg("session started")

	res := describe(id, l)
	res.Ranked = ranked
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := s.opts.Store.Get(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusNotFound, "not_found")
		return
	}
	res := describe(id, l)
	if l.Round() > 0 {
		out := l.Outcome()
		res.Outcome = &out
	}
	writeJSON(w, http.StatusOK, res)
}

// feedbackReq is the body of POST /sessions/{id}/feedback.
type feedbackReq struct {
	Tokens []string `json:"tokens"`
	Guess  string   `json:"guess"`
	Marks  string   `json:"marks"` // one of 2/g (hit), 1/y (present), 0/b/. (miss) per letter
}

func (req feedbackReq) record() (constraint.Record, error) {
	if len(req.Tokens) > 0 {
		return feedback.ParseTokens(req.Tokens)
	}
	if req.Guess == "" {
		return constraint.Record{}, errors.New("tokens or guess required")
	}
	marks, err := game.ParsePattern(req.Marks)
	if err != nil {
		return constraint.Record{}, err
	}
	return game.Record(req.Guess, marks)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := s.opts.Store.Get(r.Context(), id)
	if err != nil {
		writeErr(w, http.StatusNotFound, "not_found")
		return
	}

	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	rec, err := req.record()
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	// A rank that failed after the previous Apply leaves the loop in Ready.
	if l.State() == solver.Ready {
		if _, err := l.Rank(r.Context()); err != nil {
			s.searchFailed(w, err)
			return
		}
	}

	out, err := l.Apply(r.Context(), rec)
	if err != nil {
		if errors.Is(err, solver.ErrState) {
			writeErr(w, http.StatusConflict, l.State().String())
			return
		}
		writeErr(w, http.StatusServiceUnavailable, "cancelled")
		return
	}

	res := describe(id, l)
	res.Outcome = &out
	if !out.Done() {
		ranked, err := l.Rank(r.Context())
		if err != nil {
			s.searchFailed(w, err)
			return
		}
		res.Ranked = ranked
		res.Round = l.Round()
		res.State = l.State()
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	removed, err := s.opts.Store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Error().Err(err).Msg("delete session")
		writeErr(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	if !removed {
		writeErr(w, http.StatusNotFound, "not_found")
		return
	}
	s.opts.Metrics.SessionClosed()
	w.WriteHeader(http.StatusNoContent)
}
