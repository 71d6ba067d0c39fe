package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawnder-backend/internal/models"
	"pawnder-backend/internal/services"

	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	sessions map[string]*models.Session
	err      error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	session, ok := f.sessions[token]
	if !ok {
		return nil, fmt.Errorf("%w: unknown token", services.ErrNotLoggedIn)
	}
	return session, nil
}

func protected(auth SessionAuthenticator) http.Handler {
	return AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		w.Write([]byte(user.ID + ":" + GetSessionID(r.Context())))
	}))
}

func TestAuthMiddleware(t *testing.T) {
	auth := &fakeAuthenticator{sessions: map[string]*models.Session{
		"good": {ID: "s1", User: models.User{ID: "u1"}},
	}}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", status: http.StatusOK, body: "u1:s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(auth).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareStoreFailure(t *testing.T) {
	auth := &fakeAuthenticator{err: fmt.Errorf("store down")}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()

	protected(auth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetUserWithoutSession(t *testing.T) {
	assert.Nil(t, GetUser(context.Background()))
	assert.Empty(t, GetSessionID(context.Background()))
}
