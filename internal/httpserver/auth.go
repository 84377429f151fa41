// internal/httpserver/auth.go
//
// Admin authentication and the admin-only opening recompute.
// Tokens are HS256 JWTs signed with server.admin_secret carrying role=admin;
// `kanadle token` mints them.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/internal/openings"
)

// RoleAdmin is the role claim required by admin routes.
const RoleAdmin = "admin"

// Claims is the admin token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SignAdminToken creates an HS256 admin token valid for ttl.
func SignAdminToken(secret string, subject string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("admin secret is not configured")
	}
	now := time.Now()
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(secret))
	return ss, exp, err
}

// requireAdmin enforces a valid admin bearer token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AdminSecret == "" {
			writeError(w, http.StatusForbidden, "admin_disabled")
			return
		}
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.AdminSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		if claims.Role != RoleAdmin {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// handleRecomputeOpening recomputes the opening guess, saves it, and makes it
// the round-1 recommendation of sessions created from now on.
func (s *Server) handleRecomputeOpening(w http.ResponseWriter, r *http.Request) {
	setup := s.currentSetup()
	dict := setup.Dictionary

	e, _, err := openings.Resolve(r.Context(), s.deps.Openings, dict.Key(), dict.Len(), setup.Selector, true)
	if err != nil {
		log.Error().Err(err).Msg("recompute opening")
		writeError(w, http.StatusServiceUnavailable, "precompute_failed")
		return
	}

	next := *setup
	next.Opening = &e.Result
	s.mu.Lock()
	s.setup = &next
	s.mu.Unlock()

	log.Info().Str("guess", e.Result.Guess.String()).Float64("bits", e.Result.Bits).Msg("opening replaced")
	writeJSON(w, http.StatusOK, e)
}
