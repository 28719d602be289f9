package service

import (
	"context"
	"errors"
	"time"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
)

// PropertyService implements property CRUD, mirroring the inspection
// contracts.
type PropertyService struct {
	repo repository.PropertyRepository
	now  func() time.Time
}

// NewPropertyService constructs a PropertyService using the provided
// repository.
func NewPropertyService(repo repository.PropertyRepository) *PropertyService {
	return &PropertyService{repo: repo, now: time.Now}
}

// List returns all properties in creation order.
func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	return s.repo.List(ctx)
}

// Get returns the property with the given id.
func (s *PropertyService) Get(ctx context.Context, id int) (*models.Property, error) {
	prop, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	return prop, err
}

// Create stores a new property, stamping the creation timestamp.
func (s *PropertyService) Create(ctx context.Context, prop models.Property) (*models.Property, error) {
	prop.CreatedAt = s.now().UTC().Format(time.RFC3339)
	prop.UpdatedAt = ""
	return s.repo.Create(ctx, prop)
}

// Update shallow-merges the patch onto the stored property, stamps
// updatedAt, and returns the merged record.
func (s *PropertyService) Update(ctx context.Context, id int, patch models.PropertyPatch) (*models.Property, error) {
	prop, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(prop)
	prop.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.Replace(ctx, *prop); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return prop, nil
}

// Delete removes the property. The bool reports whether a record was
// actually removed.
func (s *PropertyService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
