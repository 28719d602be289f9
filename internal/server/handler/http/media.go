package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/digiprop/inspect/internal/backend"
	"github.com/digiprop/inspect/internal/models"
)

// MediaService defines the upload operation required by the HTTP handler.
type MediaService interface {
	UploadImage(ctx context.Context, uri string, metadata models.ImageMetadata) (*models.UploadedImage, error)
}

// MediaHandler handles image upload requests.
type MediaHandler struct {
	MediaService MediaService
}

type uploadRequest struct {
	URI      string               `json:"uri"`
	Metadata models.ImageMetadata `json:"metadata"`
}

// Upload handles POST /api/images.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URI == "" {
		writeEnvelope(w, http.StatusBadRequest, backend.Response[models.UploadedImage]{Success: false, Error: "invalid request"})
		return
	}

	img, err := h.MediaService.UploadImage(r.Context(), req.URI, req.Metadata)
	if err != nil {
		writeEnvelope(w, statusFor(err), backend.Fail[models.UploadedImage](err, "Failed to upload image"))
		return
	}
	writeEnvelope(w, http.StatusOK, backend.OK(*img))
}
