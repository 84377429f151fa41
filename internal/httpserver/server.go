// internal/httpserver/server.go
//
// HTTP server wiring for the kanadle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/cache".
//   - Solver endpoints: POST /score, /sessions/*.
//   - Practice endpoints: POST /game/new, POST /game/guess, /daily/*.
//   - Admin endpoint (JWT, role=admin): POST /admin/opening.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Sessions and games are held in memory, bounded and expiring after
//     SessionTTL idle; finished games are dropped. Only openings and daily
//     results reach SQLite.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/kanadle/internal/daily"
	"github.com/robalobadob/kanadle/internal/feedback"
	"github.com/robalobadob/kanadle/internal/game"
	"github.com/robalobadob/kanadle/internal/openings"
	"github.com/robalobadob/kanadle/internal/session"
	"github.com/robalobadob/kanadle/internal/store"
	"github.com/robalobadob/kanadle/internal/words"
)

// DefaultClientOrigin is the CORS origin used when none is configured.
const DefaultClientOrigin = "http://localhost:5173"

// Limits for the in-memory session and game stores.
const (
	DefaultSessionTTL  = 24 * time.Hour
	DefaultMaxSessions = 10_000
)

// Config holds the server's tunables.
type Config struct {
	ClientOrigin string
	AdminSecret  string
	DailySalt    string
	Rows         int
	DisplayLimit int
	SessionTTL   time.Duration // idle lifetime of sessions and games
	MaxSessions  int           // per store; least recently used evicted first
}

// Deps are the collaborators a Server needs. Openings and Daily may be nil.
type Deps struct {
	Setup       *session.Setup
	Engine      *feedback.Engine
	Frequencies words.Frequencies
	Openings    openings.Store
	Daily       *daily.Store
	Sessions    store.Store[*session.Session]
	Games       store.Store[*game.Game]
}

// Server bundles router, in-memory stores and the shared solver setup.
type Server struct {
	r    *chi.Mux
	cfg  Config
	deps Deps

	mu    sync.RWMutex
	setup *session.Setup

	dailyGames sync.Map // game ID → dailyGame
	now        func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, deps Deps) *Server {
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = DefaultClientOrigin
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}
	if deps.Sessions == nil {
		deps.Sessions = store.NewExpiringStore[*session.Session](cfg.MaxSessions, cfg.SessionTTL)
	}
	if deps.Games == nil {
		deps.Games = store.NewExpiringStore[*game.Game](cfg.MaxSessions, cfg.SessionTTL)
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, deps: deps, setup: deps.Setup, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFor(cfg.ClientOrigin))       // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "kanadle",
			"words":   deps.Setup.Dictionary.Len(),
			"endpoints": []string{
				"/health", "POST /score", "POST /sessions", "GET /sessions/{id}",
				"GET /sessions/{id}/recommend", "POST /sessions/{id}/feedback", "DELETE /sessions/{id}",
				"POST /game/new", "POST /game/guess", "GET /daily", "GET /daily/summary",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/cache", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, deps.Engine.Stats())
	})

	s.mountSolver(s.r)
	s.mountGame(s.r)
	s.mountDaily(s.r)

	s.r.With(s.requireAdmin).Post("/admin/opening", s.handleRecomputeOpening)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) currentSetup() *session.Setup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setup
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
