package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
)

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestInspectionService() *InspectionService {
	svc := NewInspectionService(repository.NewMemoryInspectionRepository())
	svc.now = func() time.Time { return fixedTime }
	return svc
}

func TestInspectionCreateStampsAndForcesStatus(t *testing.T) {
	svc := newTestInspectionService()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Inspection{
		Address:   "12 Elm St",
		Status:    models.StatusPending,
		UpdatedAt: "should be dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, models.StatusCompleted, created.Status)
	assert.Equal(t, "2025-03-01T12:00:00Z", created.CreatedAt)
	assert.Empty(t, created.UpdatedAt)
}

func TestInspectionUpdateMergesAndStamps(t *testing.T) {
	svc := newTestInspectionService()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Inspection{Address: "12 Elm St", Client: "Akrom"})
	require.NoError(t, err)

	client := "John"
	updated, err := svc.Update(ctx, created.ID, models.InspectionPatch{
		Client: &client,
		RoomPhotos: map[string][]string{
			"Kitchen": {"file:///a.jpg"},
		},
	})
	require.NoError(t, err)
	// Untouched fields survive the merge.
	assert.Equal(t, "12 Elm St", updated.Address)
	assert.Equal(t, "John", updated.Client)
	assert.Equal(t, []string{"file:///a.jpg"}, updated.RoomPhotos["Kitchen"])
	assert.Equal(t, "2025-03-01T12:00:00Z", updated.UpdatedAt)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.Client)
}

func TestInspectionNotFound(t *testing.T) {
	svc := newTestInspectionService()
	ctx := context.Background()

	_, err := svc.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrInspectionNotFound)

	_, err = svc.Update(ctx, 42, models.InspectionPatch{})
	assert.ErrorIs(t, err, ErrInspectionNotFound)
}

func TestInspectionDelete(t *testing.T) {
	svc := newTestInspectionService()
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Inspection{})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting an absent id reports false without an error.
	deleted, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPropertyCRUD(t *testing.T) {
	svc := NewPropertyService(repository.NewMemoryPropertyRepository())
	svc.now = func() time.Time { return fixedTime }
	ctx := context.Background()

	created, err := svc.Create(ctx, models.Property{Address: "12 Elm St", Bedrooms: "04"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T12:00:00Z", created.CreatedAt)

	bedrooms := "05"
	updated, err := svc.Update(ctx, created.ID, models.PropertyPatch{Bedrooms: &bedrooms})
	require.NoError(t, err)
	assert.Equal(t, "05", updated.Bedrooms)
	assert.Equal(t, "12 Elm St", updated.Address)
	assert.Equal(t, "2025-03-01T12:00:00Z", updated.UpdatedAt)

	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMediaUpload(t *testing.T) {
	svc := NewMediaService()

	img, err := svc.UploadImage(context.Background(), "file:///photo.jpg", models.ImageMetadata{
		RoomName: "Kitchen", Timestamp: "2025-03-01T12:00:00Z", Source: models.SourceCamera,
	})
	require.NoError(t, err)
	assert.Contains(t, img.ID, "img_")
	assert.Equal(t, "file:///photo.jpg", img.URL)
	assert.Equal(t, "Kitchen", img.Metadata.RoomName)

	// Ids are unique per upload.
	img2, err := svc.UploadImage(context.Background(), "file:///photo.jpg", models.ImageMetadata{})
	require.NoError(t, err)
	assert.NotEqual(t, img.ID, img2.ID)
}
