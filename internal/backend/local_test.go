package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
	"github.com/digiprop/inspect/internal/service"
)

func newTestBackend() *Local {
	return NewLocalMock(zap.NewNop(), WithLatencyScale(0))
}

func TestLoginEnvelope(t *testing.T) {
	b := newTestBackend()
	ctx := context.Background()

	resp := b.Login(ctx, "test@example.com", repository.SeedPassword)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "1", resp.Data.User.ID)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Empty(t, resp.Error)

	// Declared failures travel verbatim inside the envelope.
	resp = b.Login(ctx, "nobody@example.com", "x")
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, "User not found", resp.Error)

	resp = b.Login(ctx, "test@example.com", "wrong")
	assert.Equal(t, "Invalid password", resp.Error)
}

func TestSignupEnvelope(t *testing.T) {
	b := newTestBackend()
	ctx := context.Background()

	resp := b.Signup(ctx, "New User", "new@example.com", "secret")
	require.True(t, resp.Success)
	assert.Equal(t, "3", resp.Data.User.ID)

	resp = b.Signup(ctx, "Dup", "test@example.com", "x")
	assert.False(t, resp.Success)
	assert.Equal(t, "Email already in use", resp.Error)
}

func TestPasswordResetFlow(t *testing.T) {
	b := newTestBackend()
	ctx := context.Background()

	resp := b.ForgotPassword(ctx, "nobody@example.com")
	assert.False(t, resp.Success)
	assert.Equal(t, "No account found with this email", resp.Error)

	msgResp := b.ForgotPassword(ctx, "test@example.com")
	require.True(t, msgResp.Success)
	assert.Equal(t, "Verification code sent to your email", msgResp.Data.Message)

	// A wrong code is a successful envelope reporting invalid.
	verify := b.VerifyCode(ctx, "test@example.com", "000000")
	require.True(t, verify.Success)
	assert.False(t, verify.Data.Valid)

	verify = b.VerifyCode(ctx, "other@example.com", "000000")
	assert.False(t, verify.Success)
	assert.Equal(t, "No verification code found for this email", verify.Error)

	reset := b.ResetPassword(ctx, "test@example.com", "changed")
	require.True(t, reset.Success)
	require.True(t, b.Login(ctx, "test@example.com", "changed").Success)
}

func TestInspectionLifecycle(t *testing.T) {
	b := newTestBackend()
	ctx := context.Background()

	list := b.GetInspections(ctx)
	require.True(t, list.Success)
	assert.Empty(t, *list.Data)

	created := b.CreateInspection(ctx, models.Inspection{
		Address: "12 Elm St",
		Status:  models.StatusPending,
	})
	require.True(t, created.Success)
	assert.Equal(t, 1, created.Data.ID)
	// Status is forced on creation.
	assert.Equal(t, models.StatusCompleted, created.Data.Status)
	assert.NotEmpty(t, created.Data.CreatedAt)

	client := "Akrom"
	updated := b.UpdateInspection(ctx, 1, models.InspectionPatch{Client: &client})
	require.True(t, updated.Success)
	assert.Equal(t, "Akrom", updated.Data.Client)
	assert.Equal(t, "12 Elm St", updated.Data.Address)
	assert.NotEmpty(t, updated.Data.UpdatedAt)

	missing := b.GetInspectionByID(ctx, 42)
	assert.False(t, missing.Success)
	assert.Equal(t, "Inspection not found", missing.Error)

	del := b.DeleteInspection(ctx, 1)
	require.True(t, del.Success)
	assert.True(t, del.Data.Success)

	// Deleting again acknowledges without removing anything.
	del = b.DeleteInspection(ctx, 1)
	require.True(t, del.Success)
	assert.False(t, del.Data.Success)
}

func TestPropertyLifecycle(t *testing.T) {
	b := newTestBackend()
	ctx := context.Background()

	created := b.CreateProperty(ctx, models.Property{Address: "12 Elm St", Bedrooms: "04"})
	require.True(t, created.Success)
	require.Equal(t, 1, created.Data.ID)

	bathrooms := "02"
	updated := b.UpdateProperty(ctx, 1, models.PropertyPatch{Bathrooms: &bathrooms})
	require.True(t, updated.Success)
	assert.Equal(t, "02", updated.Data.Bathrooms)

	missing := b.GetPropertyByID(ctx, 42)
	assert.False(t, missing.Success)
	assert.Equal(t, "Property not found", missing.Error)

	list := b.GetProperties(ctx)
	require.True(t, list.Success)
	assert.Len(t, *list.Data, 1)
}

func TestUploadImage(t *testing.T) {
	b := newTestBackend()

	resp := b.UploadImage(context.Background(), "file:///photo.jpg", models.ImageMetadata{RoomName: "Kitchen"})
	require.True(t, resp.Success)
	assert.Contains(t, resp.Data.ID, "img_")
	assert.Equal(t, "file:///photo.jpg", resp.Data.URL)
}

func TestProfile(t *testing.T) {
	b := newTestBackend()
	ctx := context.Background()

	resp := b.GetUserProfile(ctx, "1")
	require.True(t, resp.Success)
	assert.Equal(t, "Test User", resp.Data.Name)

	missing := b.GetUserProfile(ctx, "99")
	assert.False(t, missing.Success)
	assert.Equal(t, "User not found", missing.Error)
}

func TestCanceledContextUsesGenericMessage(t *testing.T) {
	// Full latency, so the canceled context wins the select.
	b := NewLocalMock(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := b.Login(ctx, "test@example.com", repository.SeedPassword)
	assert.False(t, resp.Success)
	// Context errors are not declared failures, the generic message is used.
	assert.Equal(t, "An error occurred during login", resp.Error)
}

func TestSimulatedLatencyScales(t *testing.T) {
	b := NewLocalMock(zap.NewNop(), WithLatencyScale(0.01))

	start := time.Now()
	resp := b.GetInspections(context.Background())
	elapsed := time.Since(start)

	require.True(t, resp.Success)
	// 500ms scaled by 0.01 is 5ms; anything in the tens of ms proves the
	// delay ran without slowing the suite.
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestIsDeclared(t *testing.T) {
	assert.True(t, IsDeclared(service.ErrUserNotFound))
	assert.True(t, IsDeclared(service.ErrCodeExpired))
	assert.False(t, IsDeclared(context.Canceled))
	assert.False(t, IsDeclared(nil))
}
