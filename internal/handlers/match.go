package handlers

import (
	"net/http"

	"pawnder-backend/internal/middleware"
	"pawnder-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MatchHandler handles swipe, match and chat HTTP requests
type MatchHandler struct {
	matchService   *services.MatchService
	messageService *services.MessageService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService, messageService *services.MessageService) *MatchHandler {
	return &MatchHandler{
		matchService:   matchService,
		messageService: messageService,
	}
}

// SwipeRequest represents the request body for a swipe
type SwipeRequest struct {
	DogID string `json:"dog_id"`
}

// SendMessageRequest represents the request body for a chat message
type SendMessageRequest struct {
	Text string `json:"text"`
}

// SwipeRight handles POST /api/v1/swipes/right
func (h *MatchHandler) SwipeRight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var req SwipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.matchService.SwipeRight(ctx, user, req.DogID)
	if err != nil {
		respondServiceError(w, err, "swipe")
		return
	}

	log.Debug().
		Str("user_id", user.ID).
		Str("dog_id", req.DogID).
		Bool("matched", result.Matched).
		Msg("Swiped right")

	respondJSON(w, result, http.StatusOK)
}

// SwipeLeft handles POST /api/v1/swipes/left
func (h *MatchHandler) SwipeLeft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SwipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.matchService.SwipeLeft(ctx, middleware.GetUser(ctx), req.DogID); err != nil {
		respondServiceError(w, err, "swipe")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMatches handles GET /api/v1/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	matches, err := h.matchService.ListMatches(ctx, middleware.GetUser(ctx), r.URL.Query().Get("dog_id"))
	if err != nil {
		respondServiceError(w, err, "list matches")
		return
	}

	respondJSON(w, map[string]interface{}{"matches": matches}, http.StatusOK)
}

// ListMessages handles GET /api/v1/matches/{match_id}/messages
func (h *MatchHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messages, err := h.messageService.List(ctx, middleware.GetUser(ctx), chi.URLParam(r, "match_id"))
	if err != nil {
		respondServiceError(w, err, "list messages")
		return
	}

	respondJSON(w, map[string]interface{}{"messages": messages}, http.StatusOK)
}

// SendMessage handles POST /api/v1/matches/{match_id}/messages
func (h *MatchHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.messageService.Send(ctx, middleware.GetUser(ctx), chi.URLParam(r, "match_id"), req.Text)
	if err != nil {
		respondServiceError(w, err, "send message")
		return
	}

	respondJSON(w, msg, http.StatusCreated)
}
