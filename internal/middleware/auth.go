package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionAuthenticator resolves a bearer token to its live session
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// AuthMiddleware creates a middleware for JWT session authentication
func AuthMiddleware(auth SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			session, err := auth.Authenticate(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, services.ErrNotLoggedIn) {
					respondError(w, "Invalid or expired session", http.StatusUnauthorized)
					return
				}
				log.Error().Err(err).Msg("Failed to authenticate session")
				respondError(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			ctx := WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession stores the session in the context
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession extracts the session from context
func GetSession(ctx context.Context) *models.Session {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// GetUser returns the session's user, or nil when there is no session
func GetUser(ctx context.Context) *models.User {
	session := GetSession(ctx)
	if session == nil {
		return nil
	}
	return &session.User
}

// GetSessionID returns the session id, or "" when there is no session
func GetSessionID(ctx context.Context) string {
	session := GetSession(ctx)
	if session == nil {
		return ""
	}
	return session.ID
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
