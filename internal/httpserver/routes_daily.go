// internal/httpserver/routes_daily.go
//
// GET /daily replays the solver against the day's deterministic answer.
// The answer is chosen by HMAC(salt, YYYY-MM-DD) over the answer corpus, so
// every instance sharing a salt and word list agrees on it.
//
// Query parameters:
//   - date: YYYY-MM-DD (UTC), defaults to today.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// dailyRes is the response of GET /daily.
type dailyRes struct {
	Date string `json:"date"`
	*solver.PlayResult
}

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if q := r.URL.Query().Get("date"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "bad_date")
			return
		}
		date = t
	}

	answer := daily.Answer(date, s.opts.DailySalt, s.opts.Lists.Answers)
	if answer == "" {
		writeErr(w, http.StatusServiceUnavailable, "no_answers")
		return
	}
	res, err := solver.Play(r.Context(), s.opts.Lists, answer, s.opts.Solver)
	if err != nil {
		s.searchFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dailyRes{Date: daily.DateKey(date), PlayResult: res})
}
