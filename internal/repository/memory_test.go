package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/digiprop/inspect/internal/models"
)

func TestMemoryUserRepositorySeeds(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "Test User", user.Name)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(SeedPassword)))

	user, err = repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)

	// Email matching is exact, no case folding.
	_, err = repo.GetByEmail(ctx, "Test@Example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepositoryCreateAssignsIDs(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, models.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "3", first.ID)

	second, err := repo.Create(ctx, models.User{Name: "B", Email: "b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "4", second.ID)
}

func TestMemoryUserRepositoryUpdatePassword(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpdatePassword(ctx, "test@example.com", "newhash"))
	user, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newhash", user.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, "nobody@example.com", "x"), ErrNotFound)
}

func TestMemoryCodeRepositoryReplaces(t *testing.T) {
	repo := NewMemoryCodeRepository()
	ctx := context.Background()
	expires := time.Now().Add(15 * time.Minute)

	require.NoError(t, repo.Put(ctx, models.VerificationCode{Email: "a@example.com", Code: "111111", ExpiresAt: expires}))
	require.NoError(t, repo.Put(ctx, models.VerificationCode{Email: "a@example.com", Code: "222222", ExpiresAt: expires}))

	code, err := repo.Get(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code.Code)

	_, err = repo.Get(ctx, "b@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryInspectionRepositoryCRUD(t *testing.T) {
	repo := NewMemoryInspectionRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Inspection{Address: "12 Elm St"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	second, err := repo.Create(ctx, models.Inspection{Address: "7 Oak Ave"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	created.Address = "12 Elm Street"
	require.NoError(t, repo.Replace(ctx, *created))
	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "12 Elm Street", got.Address)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Deleted ids are not reused.
	third, err := repo.Create(ctx, models.Inspection{})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestMemoryPropertyRepositoryCRUD(t *testing.T) {
	repo := NewMemoryPropertyRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Property{Address: "12 Elm St", Bedrooms: "04"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	created.Bedrooms = "05"
	require.NoError(t, repo.Replace(ctx, *created))
	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "05", got.Bedrooms)

	assert.ErrorIs(t, repo.Replace(ctx, models.Property{ID: 42}), ErrNotFound)

	deleted, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
