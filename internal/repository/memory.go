package repository

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/digiprop/inspect/internal/models"
)

// SeedPassword is the password of the two seeded test accounts.
const SeedPassword = "password123"

// MemoryUserRepository keeps users in memory. It starts seeded with the
// two well-known test accounts, so the next assigned id is 3.
type MemoryUserRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

// NewMemoryUserRepository returns a repository seeded with the test
// accounts test@example.com and john@example.com.
func NewMemoryUserRepository() *MemoryUserRepository {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost, which is constant here.
		panic(err)
	}
	return &MemoryUserRepository{
		users: []models.User{
			{ID: "1", Name: "Test User", Email: "test@example.com", PasswordHash: string(hash)},
			{ID: "2", Name: "John Doe", Email: "john@example.com", PasswordHash: string(hash)},
		},
		nextID: 3,
	}
}

// GetByEmail returns the user with the exact email, or ErrNotFound.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetByID returns the user with the given id, or ErrNotFound.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// Create stores the user under the next auto-incremented id.
func (r *MemoryUserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.users = append(r.users, user)
	stored := user
	return &stored, nil
}

// UpdatePassword overwrites the password hash of the user with the email.
func (r *MemoryUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == email {
			r.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return ErrNotFound
}

// MemoryCodeRepository keeps verification codes in memory, one per email.
type MemoryCodeRepository struct {
	mu    sync.Mutex
	codes map[string]models.VerificationCode
}

// NewMemoryCodeRepository returns an empty code repository.
func NewMemoryCodeRepository() *MemoryCodeRepository {
	return &MemoryCodeRepository{codes: make(map[string]models.VerificationCode)}
}

// Put stores the code, discarding any prior code for the same email.
func (r *MemoryCodeRepository) Put(ctx context.Context, code models.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[code.Email] = code
	return nil
}

// Get returns the active code for the email, or ErrNotFound.
func (r *MemoryCodeRepository) Get(ctx context.Context, email string) (*models.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &code, nil
}

// MemoryInspectionRepository keeps inspections in memory with ids
// assigned from a strictly increasing counter.
type MemoryInspectionRepository struct {
	mu          sync.Mutex
	inspections []models.Inspection
	nextID      int
}

// NewMemoryInspectionRepository returns an empty inspection repository.
func NewMemoryInspectionRepository() *MemoryInspectionRepository {
	return &MemoryInspectionRepository{nextID: 1}
}

// List returns all inspections in creation order.
func (r *MemoryInspectionRepository) List(ctx context.Context) ([]models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Inspection, len(r.inspections))
	copy(out, r.inspections)
	return out, nil
}

// GetByID returns the inspection with the given id, or ErrNotFound.
func (r *MemoryInspectionRepository) GetByID(ctx context.Context, id int) (*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, insp := range r.inspections {
		if insp.ID == id {
			found := insp
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns the next id and appends the inspection.
func (r *MemoryInspectionRepository) Create(ctx context.Context, insp models.Inspection) (*models.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	insp.ID = r.nextID
	r.nextID++
	r.inspections = append(r.inspections, insp)
	stored := insp
	return &stored, nil
}

// Replace overwrites the stored inspection with the matching id.
func (r *MemoryInspectionRepository) Replace(ctx context.Context, insp models.Inspection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.inspections {
		if r.inspections[i].ID == insp.ID {
			r.inspections[i] = insp
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the inspection with the given id.
func (r *MemoryInspectionRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.inspections {
		if r.inspections[i].ID == id {
			r.inspections = append(r.inspections[:i], r.inspections[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// MemoryPropertyRepository keeps properties in memory.
type MemoryPropertyRepository struct {
	mu         sync.Mutex
	properties []models.Property
	nextID     int
}

// NewMemoryPropertyRepository returns an empty property repository.
func NewMemoryPropertyRepository() *MemoryPropertyRepository {
	return &MemoryPropertyRepository{nextID: 1}
}

// List returns all properties in creation order.
func (r *MemoryPropertyRepository) List(ctx context.Context) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Property, len(r.properties))
	copy(out, r.properties)
	return out, nil
}

// GetByID returns the property with the given id, or ErrNotFound.
func (r *MemoryPropertyRepository) GetByID(ctx context.Context, id int) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, prop := range r.properties {
		if prop.ID == id {
			found := prop
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns the next id and appends the property.
func (r *MemoryPropertyRepository) Create(ctx context.Context, prop models.Property) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prop.ID = r.nextID
	r.nextID++
	r.properties = append(r.properties, prop)
	stored := prop
	return &stored, nil
}

// Replace overwrites the stored property with the matching id.
func (r *MemoryPropertyRepository) Replace(ctx context.Context, prop models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.properties {
		if r.properties[i].ID == prop.ID {
			r.properties[i] = prop
			return nil
		}
	}
	return ErrNotFound
}

// Delete removes the property with the given id.
func (r *MemoryPropertyRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.properties {
		if r.properties[i].ID == id {
			r.properties = append(r.properties[:i], r.properties[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
