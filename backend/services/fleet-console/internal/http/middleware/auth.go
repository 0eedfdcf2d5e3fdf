package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"gestaocombustivel/backend/services/fleet-console/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionSource reports the console's authentication state.
type SessionSource interface {
	IsAuthenticated() bool
	Session() session.Session
}

// RequireSession rejects requests while the console is not signed in and stores the
// session snapshot in the request context.
func RequireSession(src SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !src.IsAuthenticated() {
				writeError(w, http.StatusUnauthorized, "not signed in")
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, src.Session())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the snapshot stored by RequireSession.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	return sess, ok
}

// Chain wraps h with middlewares, the first one outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
