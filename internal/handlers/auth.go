package handlers

import (
	"net/http"

	"pawnder-backend/internal/middleware"
	"pawnder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PushTokenRequest carries an APNs device token; empty clears it
type PushTokenRequest struct {
	PushToken string `json:"push_token"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(w, err, "sign up")
		return
	}

	log.Info().Str("user_id", result.User.ID).Msg("User signed up")

	respondJSON(w, result, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "log in")
		return
	}

	log.Info().Str("user_id", result.User.ID).Msg("User logged in")

	respondJSON(w, result, http.StatusOK)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.authService.Logout(ctx, middleware.GetSessionID(ctx)); err != nil {
		respondServiceError(w, err, "log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.authService.Me(ctx, middleware.GetUser(ctx))
	if err != nil {
		respondServiceError(w, err, "get user")
		return
	}
	respondJSON(w, user, http.StatusOK)
}

// UpdatePushToken handles PUT /api/v1/me/push-token
func (h *AuthHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PushTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.UpdatePushToken(ctx, middleware.GetSessionID(ctx), middleware.GetUser(ctx), req.PushToken)
	if err != nil {
		respondServiceError(w, err, "update push token")
		return
	}

	respondJSON(w, user, http.StatusOK)
}
