package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobunya-carrental-backend/internal/access"
	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/logger"
	"jobunya-carrental-backend/internal/metrics"
	"jobunya-carrental-backend/internal/session"

	"github.com/gorilla/mux"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionFromContext returns the authenticated session placed there by
// RequireAuth. The bool is false on unauthenticated routes.
func sessionFromContext(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*domain.Session)
	return sess, ok
}

type AuthMiddleware struct {
	sessions session.Store
}

func NewAuthMiddleware(sessions session.Store) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// extractToken reads the "Authorization: Token <value>" header. The Bearer
// scheme is accepted as an alias.
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	for _, scheme := range []string{"Token ", "Bearer "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// RequireAuth resolves the bearer token to a session and injects it into the
// request context. A missing header and an unresolvable token get distinct
// 401 details; either way the request is rejected exactly once, here. No
// handler re-implements 401 handling.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
			return
		}

		sess, err := m.sessions.Get(r.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				// Unknown, expired or corrupt token: the single
				// invalidation path. The client clears its copy and
				// redirects to the login view on this response.
				metrics.IncSessionInvalidated()
				writeDetail(w, http.StatusUnauthorized, detailInvalidToken)
				return
			}
			logger.Error("Session lookup failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Session lookup failed.")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a subtree on access.Decide. It assumes RequireAuth ran
// first; a missing session is treated as unauthenticated, not as a bug that
// lets the request through.
func RequireRole(role domain.Role) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := sessionFromContext(r.Context())
			decision := access.Decide(sess, role)
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}
			switch decision.RedirectPath {
			case access.LoginPath:
				writeDetail(w, http.StatusUnauthorized, detailNoCredentials)
			default:
				// Authenticated but wrong role: the client sends the
				// user home, not to the login view.
				writeJSON(w, http.StatusForbidden, map[string]string{
					"detail":   detailForbidden,
					"redirect": decision.RedirectPath,
				})
			}
		})
	}
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument records a request counter per route template and status code.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		metrics.IncHTTP(route, strconv.Itoa(rec.status))
	})
}
