// Package repository provides persistence implementations for the
// inspection backend: seeded in-memory stores for local/mock use and
// tests, PostgreSQL stores for production, and a Redis-backed store
// for verification codes.
package repository

import (
	"context"
	"errors"

	"github.com/digiprop/inspect/internal/models"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// GetByEmail returns the user with the exact email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns the user with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Create stores a new user, assigning the next id, and returns it.
	Create(ctx context.Context, user models.User) (*models.User, error)
	// UpdatePassword overwrites the stored password hash for the email.
	// Returns ErrNotFound if no user has that email.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// CodeRepository defines the persistence operations for verification
// codes. At most one code is active per email.
type CodeRepository interface {
	// Put stores the code, replacing any prior code for the same email.
	Put(ctx context.Context, code models.VerificationCode) error
	// Get returns the active code for the email, or ErrNotFound.
	Get(ctx context.Context, email string) (*models.VerificationCode, error)
}

// InspectionRepository defines the persistence operations for inspections.
type InspectionRepository interface {
	// List returns all inspections in creation order.
	List(ctx context.Context) ([]models.Inspection, error)
	// GetByID returns the inspection with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int) (*models.Inspection, error)
	// Create stores a new inspection, assigning the next integer id,
	// and returns the stored record.
	Create(ctx context.Context, insp models.Inspection) (*models.Inspection, error)
	// Replace overwrites the inspection with the matching id.
	// Returns ErrNotFound if the id is absent.
	Replace(ctx context.Context, insp models.Inspection) error
	// Delete removes the inspection. The bool reports whether a record
	// was actually removed.
	Delete(ctx context.Context, id int) (bool, error)
}

// PropertyRepository defines the persistence operations for properties.
type PropertyRepository interface {
	List(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id int) (*models.Property, error)
	Create(ctx context.Context, prop models.Property) (*models.Property, error)
	Replace(ctx context.Context, prop models.Property) error
	Delete(ctx context.Context, id int) (bool, error)
}
