// Package middleware provides HTTP middlewares for session
// authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sgshs/eventportal/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// TokenFromRequest extracts the bearer token from the Authorization
// header. Returns an empty string if absent or malformed.
func TokenFromRequest(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// RequireSession resolves the bearer token against the session manager
// and stores the session in the request context. Requests without a
// live session are rejected with 401. The session may still be
// anonymous; stage checks are layered separately.
func RequireSession(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				http.Error(w, "missing session token", http.StatusUnauthorized)
				return
			}
			sess, ok := m.Get(token)
			if !ok {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated rejects requests whose session has not completed
// code verification. It must run after RequireSession.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil || sess.Stage != session.StageAuthenticated {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session has not passed the admin
// gate. It must run after RequireAuthenticated.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil || !sess.IsAdmin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext extracts the session stored by RequireSession.
// Returns nil if not found.
func SessionFromContext(ctx context.Context) *session.Session {
	val := ctx.Value(sessionKey)
	if s, ok := val.(*session.Session); ok {
		return s
	}
	return nil
}

// ContextWithSession returns a copy of ctx carrying the session, for
// handler tests that bypass RequireSession.
func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}
