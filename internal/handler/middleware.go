package handler

import (
	"context"
	"net/http"

	"github.com/tmarsden/ticketdesk/internal/domain"
	"github.com/tmarsden/ticketdesk/internal/service"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext extracts the authenticated session from the
// request context. Returns nil if no session is authenticated.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return session
}

// RequireSession is middleware that protects routes requiring an
// authenticated session. It reads the auth_token cookie, validates the
// JWT against the current session, and injects the session into the
// request context. Returns 401 for unauthenticated requests.
func RequireSession(sessions *service.SessionManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := authenticateRequest(r, sessions)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authenticateRequest(r *http.Request, sessions *service.SessionManager) (*domain.Session, error) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return nil, err
	}
	return sessions.Authenticate(cookie.Value)
}

// SecurityHeaders wraps a handler and sets a baseline of browser
// security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
