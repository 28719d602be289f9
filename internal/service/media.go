package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/digiprop/inspect/internal/models"
)

// MediaService handles image uploads. There is no real blob storage
// behind it: the returned URL equals the submitted URI, preserving the
// upload contract shape for the workflow.
type MediaService struct{}

// NewMediaService constructs a MediaService.
func NewMediaService() *MediaService {
	return &MediaService{}
}

// UploadImage registers the image reference and returns its record.
func (s *MediaService) UploadImage(ctx context.Context, uri string, metadata models.ImageMetadata) (*models.UploadedImage, error) {
	return &models.UploadedImage{
		ID:       "img_" + uuid.NewString(),
		URL:      uri,
		Metadata: metadata,
	}, nil
}
