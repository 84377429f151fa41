// internal/httpserver/routes_game.go
//
// Practice game endpoints:
//   - POST /game/new   → start a game (random answer unless one is given)
//   - POST /game/guess → score a guess; feedback uses the solver's six codes.
//     A finished game is dropped, so later guesses get 404.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/game"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Rows   int    `json:"rows"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	g, err := game.New(s.currentSetup().Dictionary, s.deps.Engine, req.Answer, s.cfg.Rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.deps.Games.Save(r.Context(), g.ID, g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Rows: g.Rows})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Feedback feedback.Vector `json:"feedback"`
	State    game.State      `json:"state"`
	Answer   *feedback.Word  `json:"answer,omitempty"` // revealed once lost
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := s.deps.Games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	v, state, err := g.ApplyGuess(req.Guess)
	switch {
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := guessRes{Feedback: v, State: state}
	if state == game.Lost {
		ans := g.Answer
		res.Answer = &ans
	}
	if state != game.Playing {
		s.finishDaily(r, g)
		if err := s.deps.Games.Delete(r.Context(), g.ID); err != nil {
			log.Warn().Err(err).Str("game", g.ID).Msg("drop finished game")
		}
	}
	writeJSON(w, http.StatusOK, res)
}
