package handlers

import (
	"net/http"

	"pawnder-backend/internal/middleware"
	"pawnder-backend/internal/services"
)

// FeedHandler serves the swipe candidates
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// GetFeed handles GET /api/v1/feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feed, err := h.feedService.Feed(ctx, middleware.GetUser(ctx))
	if err != nil {
		respondServiceError(w, err, "get feed")
		return
	}

	respondJSON(w, map[string]interface{}{"dogs": feed}, http.StatusOK)
}

// RefreshFeed handles POST /api/v1/feed/refresh
func (h *FeedHandler) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feed, err := h.feedService.Regenerate(ctx, middleware.GetUser(ctx))
	if err != nil {
		respondServiceError(w, err, "refresh feed")
		return
	}

	respondJSON(w, map[string]interface{}{"dogs": feed}, http.StatusOK)
}
