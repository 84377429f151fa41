// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
//   - GET /daily         → start a game whose answer is today's word
//   - GET /daily/summary → played/won counts for today (or ?date=YYYY-MM-DD)
//
// Guesses go through POST /game/guess. Finished daily games are recorded in
// SQLite when a results store is configured.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/internal/daily"
	"github.com/robalobadob/kanadle/internal/game"
)

// dailyGame is the transient record of a game started from /daily.
type dailyGame struct {
	Date      string
	WordIndex int
}

func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Get("/summary", s.handleDailySummary)
	})
}

type dailyRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Rows   int    `json:"rows"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	dict := s.currentSetup().Dictionary
	answer, idx := daily.Answer(dict, now, s.cfg.DailySalt)

	g, err := game.New(dict, s.deps.Engine, answer.String(), s.cfg.Rows)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.deps.Games.Save(r.Context(), g.ID, g); err != nil {
		log.Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	date := daily.DateKey(now)
	s.dailyGames.Store(g.ID, dailyGame{Date: date, WordIndex: idx})
	writeJSON(w, http.StatusOK, dailyRes{GameID: g.ID, Date: date, Rows: g.Rows})
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.Daily == nil {
		writeError(w, http.StatusServiceUnavailable, "daily_results_disabled")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	sum, err := s.deps.Daily.Summarize(r.Context(), date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily summary")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// finishDaily records a finished daily game (best effort).
func (s *Server) finishDaily(r *http.Request, g *game.Game) {
	v, ok := s.dailyGames.LoadAndDelete(g.ID)
	if !ok || s.deps.Daily == nil {
		return
	}
	d := v.(dailyGame)
	res := daily.Result{GameID: g.ID, Date: d.Date, WordIndex: d.WordIndex, Guesses: len(g.Guesses), Won: g.Won}
	if err := s.deps.Daily.InsertResult(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record daily result")
	}
}
