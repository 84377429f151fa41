// internal/httpserver/routes_solver.go
//
// Solver endpoints:
//   - POST /score                    → feedback vector for (guess, answer)
//   - POST /sessions                 → start a solve over the whole dictionary
//   - GET  /sessions/{id}            → round, state, ranked candidates, history
//   - GET  /sessions/{id}/recommend  → next guess, expected gain in bits, worst-case pool
//   - POST /sessions/{id}/feedback   → narrow the pool by an observed vector
//   - DELETE /sessions/{id}          → drop a session

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/internal/candidates"
	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/session"
	"github.com/robalobadob/kanadle/internal/solver"
	"github.com/robalobadob/kanadle/internal/store"
)

func (s *Server) mountSolver(r chi.Router) {
	r.Post("/score", s.handleScore)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Get("/{id}", s.handleGetSession)
		r.Get("/{id}/recommend", s.handleRecommend)
		r.Post("/{id}/feedback", s.handleFeedback)
		r.Delete("/{id}", s.handleDeleteSession)
	})
}

type scoreReq struct {
	Guess  string `json:"guess"`
	Answer string `json:"answer"`
}

type scoreRes struct {
	Feedback feedback.Vector `json:"feedback"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess, err := feedback.ParseWord(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, "guess: "+err.Error())
		return
	}
	answer, err := feedback.ParseWord(req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "answer: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scoreRes{Feedback: s.deps.Engine.Feedback(guess, answer)})
}

type newSessionRes struct {
	ID         string `json:"id"`
	Candidates int    `json:"candidates"`
	Round      int    `json:"round"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := s.currentSetup().New(store.NewID())
	if err := s.deps.Sessions.Save(r.Context(), sess.ID, sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	snap := sess.Snapshot()
	writeJSON(w, http.StatusOK, newSessionRes{ID: snap.ID, Candidates: len(snap.Candidates), Round: snap.Round})
}

type candidateView struct {
	Word feedback.Word `json:"word"`
	Freq float64       `json:"freq"`
}

type sessionView struct {
	session.Snapshot
	Remaining  int             `json:"remaining"`
	Candidates []candidateView `json:"candidates"`
	Solution   *feedback.Word  `json:"solution,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	snap := sess.Snapshot()
	view := sessionView{Snapshot: snap, Remaining: len(snap.Candidates), Candidates: []candidateView{}}
	if n := len(snap.Candidates); n > 0 && n <= s.displayLimit() {
		for _, c := range s.deps.Frequencies.Rank(snap.Candidates) {
			view.Candidates = append(view.Candidates, candidateView{Word: c, Freq: s.deps.Frequencies.Of(c)})
		}
	}
	if sol, ok := sess.Solution(); ok {
		view.Solution = &sol
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	res, err := sess.Recommend(r.Context())
	switch {
	case errors.Is(err, candidates.ErrNoCandidates):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Warn().Err(err).Str("session", sess.ID).Msg("recommend")
		writeError(w, http.StatusServiceUnavailable, "recommend_failed")
		return
	}
	p := sess.Split(res.Guess)
	writeJSON(w, http.StatusOK, recommendRes{Result: res, Outcomes: len(p.Buckets), WorstCase: p.Largest()})
}

type recommendRes struct {
	solver.Result
	Outcomes  int `json:"outcomes"`
	WorstCase int `json:"worstCase"`
}

type feedbackReq struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
	Fallback bool   `json:"fallback"`
}

type feedbackRes struct {
	Turn      session.Turn  `json:"turn"`
	State     session.State `json:"state"`
	Remaining int           `json:"remaining"`
	Removed   int           `json:"removed"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess, err := feedback.ParseWord(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, "guess: "+err.Error())
		return
	}
	observed, err := feedback.ParseVector(req.Feedback)
	if err != nil {
		writeError(w, http.StatusBadRequest, "feedback: "+err.Error())
		return
	}

	turn, err := sess.Apply(r.Context(), guess, observed, req.Fallback)
	switch {
	case errors.Is(err, session.ErrFinished):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, session.ErrUnknownGuess):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Warn().Err(err).Str("session", sess.ID).Msg("apply feedback")
		writeError(w, http.StatusServiceUnavailable, "apply_failed")
		return
	}

	// Saving again restarts the idle timer.
	if err := s.deps.Sessions.Save(r.Context(), sess.ID, sess); err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("refresh session")
	}
	snap := sess.Snapshot()
	log.Debug().Str("session", sess.ID).Str("guess", turn.Guess.String()).
		Str("feedback", turn.Feedback.String()).Int("remaining", turn.Remaining).Msg("feedback applied")
	writeJSON(w, http.StatusOK, feedbackRes{Turn: turn, State: snap.State, Remaining: turn.Remaining, Removed: turn.Removed})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.deps.Sessions.Get(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err := s.deps.Sessions.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("session", id).Msg("delete session")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.deps.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) displayLimit() int {
	if s.cfg.DisplayLimit > 0 {
		return s.cfg.DisplayLimit
	}
	return 50
}
