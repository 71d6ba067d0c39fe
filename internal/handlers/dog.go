package handlers

import (
	"net/http"

	"pawnder-backend/internal/middleware"
	"pawnder-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// DogHandler handles dog profile HTTP requests
type DogHandler struct {
	dogService *services.DogService
}

// NewDogHandler creates a new dog handler
func NewDogHandler(dogService *services.DogService) *DogHandler {
	return &DogHandler{
		dogService: dogService,
	}
}

// SetCurrentRequest represents the request body for switching the active dog
type SetCurrentRequest struct {
	DogID string `json:"dog_id"`
}

// ListDogs handles GET /api/v1/dogs
func (h *DogHandler) ListDogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dogs, err := h.dogService.List(ctx, middleware.GetUser(ctx))
	if err != nil {
		respondServiceError(w, err, "list dogs")
		return
	}

	respondJSON(w, map[string]interface{}{"dogs": dogs}, http.StatusOK)
}

// CreateDog handles POST /api/v1/dogs
func (h *DogHandler) CreateDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var req services.DogInput
	if !decodeJSON(w, r, &req) {
		return
	}

	dog, err := h.dogService.Create(ctx, user, req)
	if err != nil {
		respondServiceError(w, err, "create dog")
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("dog_id", dog.ID).
		Msg("Dog created")

	respondJSON(w, dog, http.StatusCreated)
}

// UpdateDog handles PATCH /api/v1/dogs/{dog_id}
func (h *DogHandler) UpdateDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req services.DogPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	dog, err := h.dogService.Update(ctx, middleware.GetUser(ctx), chi.URLParam(r, "dog_id"), req)
	if err != nil {
		respondServiceError(w, err, "update dog")
		return
	}

	respondJSON(w, dog, http.StatusOK)
}

// DeleteDog handles DELETE /api/v1/dogs/{dog_id}
func (h *DogHandler) DeleteDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)
	dogID := chi.URLParam(r, "dog_id")

	if err := h.dogService.Delete(ctx, user, dogID); err != nil {
		respondServiceError(w, err, "delete dog")
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("dog_id", dogID).
		Msg("Dog deleted")

	w.WriteHeader(http.StatusNoContent)
}

// GetCurrentDog handles GET /api/v1/dogs/current
func (h *DogHandler) GetCurrentDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dog, err := h.dogService.Current(ctx, middleware.GetUser(ctx))
	if err != nil {
		respondServiceError(w, err, "get current dog")
		return
	}
	if dog == nil {
		respondServiceError(w, services.ErrNoActiveDog, "get current dog")
		return
	}

	respondJSON(w, dog, http.StatusOK)
}

// SetCurrentDog handles PUT /api/v1/dogs/current
func (h *DogHandler) SetCurrentDog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SetCurrentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dog, err := h.dogService.SetCurrent(ctx, middleware.GetUser(ctx), req.DogID)
	if err != nil {
		respondServiceError(w, err, "set current dog")
		return
	}

	respondJSON(w, dog, http.StatusOK)
}
