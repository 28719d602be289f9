package service

import (
	"context"
	"errors"
	"time"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
)

// InspectionService implements inspection CRUD on top of an
// InspectionRepository.
type InspectionService struct {
	repo repository.InspectionRepository
	// now is indirected for deterministic timestamps in tests.
	now func() time.Time
}

// NewInspectionService constructs an InspectionService using the provided
// repository.
func NewInspectionService(repo repository.InspectionRepository) *InspectionService {
	return &InspectionService{repo: repo, now: time.Now}
}

// List returns all inspections in creation order.
func (s *InspectionService) List(ctx context.Context) ([]models.Inspection, error) {
	return s.repo.List(ctx)
}

// Get returns the inspection with the given id.
func (s *InspectionService) Get(ctx context.Context, id int) (*models.Inspection, error) {
	insp, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInspectionNotFound
	}
	return insp, err
}

// Create stores a new inspection. The creation timestamp is stamped here
// and the status is forced to completed regardless of the caller's input;
// that quirk is part of the wire contract.
func (s *InspectionService) Create(ctx context.Context, insp models.Inspection) (*models.Inspection, error) {
	insp.CreatedAt = s.now().UTC().Format(time.RFC3339)
	insp.Status = models.StatusCompleted
	insp.UpdatedAt = ""
	return s.repo.Create(ctx, insp)
}

// Update shallow-merges the patch onto the stored inspection, stamps
// updatedAt, and returns the merged record.
func (s *InspectionService) Update(ctx context.Context, id int, patch models.InspectionPatch) (*models.Inspection, error) {
	insp, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInspectionNotFound
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(insp)
	insp.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.repo.Replace(ctx, *insp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInspectionNotFound
		}
		return nil, err
	}
	return insp, nil
}

// Delete removes the inspection. The bool reports whether a record was
// actually removed; deleting an absent id is not an error.
func (s *InspectionService) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
