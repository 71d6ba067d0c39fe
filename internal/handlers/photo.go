package handlers

import (
	"net/http"

	"pawnder-backend/internal/middleware"
	"pawnder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PhotoHandler handles dog photo upload requests
type PhotoHandler struct {
	mediaService *services.MediaService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(mediaService *services.MediaService) *PhotoHandler {
	return &PhotoHandler{
		mediaService: mediaService,
	}
}

// UploadPhoto handles POST /api/v1/dogs/photos/upload
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var req services.UploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, err := h.mediaService.PresignUpload(ctx, user, req.Filename, req.ContentType)
	if err != nil {
		respondServiceError(w, err, "generate pre-signed URL")
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("filename", req.Filename).
		Msg("Pre-signed URL generated")

	respondJSON(w, response, http.StatusOK)
}
