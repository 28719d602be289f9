package backend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/repository"
	"github.com/digiprop/inspect/internal/service"
)

// Per-operation simulated latencies. These stand in for real request
// latency so loading-state handling in the workflow stays exercised.
const (
	latencyLogin          = 500 * time.Millisecond
	latencySignup         = 800 * time.Millisecond
	latencyForgotPassword = 800 * time.Millisecond
	latencyVerifyCode     = 500 * time.Millisecond
	latencyResetPassword  = 800 * time.Millisecond
	latencyProfile        = 500 * time.Millisecond
	latencyList           = 500 * time.Millisecond
	latencyGet            = 300 * time.Millisecond
	latencyCreate         = 800 * time.Millisecond
	latencyUpdate         = 500 * time.Millisecond
	latencyDelete         = 500 * time.Millisecond
	latencyUpload         = 1000 * time.Millisecond
)

// Local is the in-process backend. It owns the service layer directly
// and delays every operation by a simulated network latency before
// resolving, keeping the call an async boundary.
type Local struct {
	auth         *service.AuthService
	inspections  *service.InspectionService
	properties   *service.PropertyService
	media        *service.MediaService
	latencyScale float64
}

var _ Client = (*Local)(nil)

// LocalOption configures a Local backend.
type LocalOption func(*Local)

// WithLatencyScale scales every simulated latency; 0 disables the delays
// (used in tests).
func WithLatencyScale(scale float64) LocalOption {
	return func(l *Local) { l.latencyScale = scale }
}

// NewLocal constructs a Local backend over the given services.
func NewLocal(auth *service.AuthService, inspections *service.InspectionService, properties *service.PropertyService, media *service.MediaService, opts ...LocalOption) *Local {
	l := &Local{
		auth:         auth,
		inspections:  inspections,
		properties:   properties,
		media:        media,
		latencyScale: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLocalMock wires a Local backend over freshly seeded in-memory
// repositories, matching the mock API the mobile app ships with.
func NewLocalMock(log *zap.Logger, opts ...LocalOption) *Local {
	users := repository.NewMemoryUserRepository()
	codes := repository.NewMemoryCodeRepository()
	auth := service.NewAuthService(users, codes, []byte("local-dev-secret"), 24*time.Hour, log)
	return NewLocal(
		auth,
		service.NewInspectionService(repository.NewMemoryInspectionRepository()),
		service.NewPropertyService(repository.NewMemoryPropertyRepository()),
		service.NewMediaService(),
		opts...,
	)
}

// delay blocks for the scaled latency or until the context is done.
func (l *Local) delay(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * l.latencyScale)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Login authenticates the user by email and password.
func (l *Local) Login(ctx context.Context, email, password string) Response[service.AuthResult] {
	if err := l.delay(ctx, latencyLogin); err != nil {
		return fail[service.AuthResult](err, "An error occurred during login")
	}
	result, err := l.auth.Login(ctx, email, password)
	if err != nil {
		return fail[service.AuthResult](err, "An error occurred during login")
	}
	return ok(*result)
}

// Signup registers a new account.
func (l *Local) Signup(ctx context.Context, name, email, password string) Response[service.AuthResult] {
	if err := l.delay(ctx, latencySignup); err != nil {
		return fail[service.AuthResult](err, "An error occurred during signup")
	}
	result, err := l.auth.Signup(ctx, name, email, password)
	if err != nil {
		return fail[service.AuthResult](err, "An error occurred during signup")
	}
	return ok(*result)
}

// ForgotPassword issues a password-reset verification code.
func (l *Local) ForgotPassword(ctx context.Context, email string) Response[Message] {
	if err := l.delay(ctx, latencyForgotPassword); err != nil {
		return fail[Message](err, "Failed to process password reset request")
	}
	if err := l.auth.ForgotPassword(ctx, email); err != nil {
		return fail[Message](err, "Failed to process password reset request")
	}
	return ok(Message{Message: "Verification code sent to your email"})
}

// VerifyCode checks a password-reset code.
func (l *Local) VerifyCode(ctx context.Context, email, code string) Response[service.VerifyResult] {
	if err := l.delay(ctx, latencyVerifyCode); err != nil {
		return fail[service.VerifyResult](err, "Failed to verify code")
	}
	result, err := l.auth.VerifyCode(ctx, email, code)
	if err != nil {
		return fail[service.VerifyResult](err, "Failed to verify code")
	}
	return ok(*result)
}

// ResetPassword overwrites the account password.
func (l *Local) ResetPassword(ctx context.Context, email, newPassword string) Response[Ack] {
	if err := l.delay(ctx, latencyResetPassword); err != nil {
		return fail[Ack](err, "Failed to reset password")
	}
	if err := l.auth.ResetPassword(ctx, email, newPassword); err != nil {
		return fail[Ack](err, "Failed to reset password")
	}
	return ok(Ack{Success: true})
}

// GetUserProfile returns the credential-free user record.
func (l *Local) GetUserProfile(ctx context.Context, userID string) Response[models.Profile] {
	if err := l.delay(ctx, latencyProfile); err != nil {
		return fail[models.Profile](err, "Failed to fetch user profile")
	}
	profile, err := l.auth.GetProfile(ctx, userID)
	if err != nil {
		return fail[models.Profile](err, "Failed to fetch user profile")
	}
	return ok(*profile)
}

// GetInspections lists all inspections.
func (l *Local) GetInspections(ctx context.Context) Response[[]models.Inspection] {
	if err := l.delay(ctx, latencyList); err != nil {
		return fail[[]models.Inspection](err, "Failed to fetch inspections")
	}
	list, err := l.inspections.List(ctx)
	if err != nil {
		return fail[[]models.Inspection](err, "Failed to fetch inspections")
	}
	return ok(list)
}

// GetInspectionByID fetches one inspection.
func (l *Local) GetInspectionByID(ctx context.Context, id int) Response[models.Inspection] {
	if err := l.delay(ctx, latencyGet); err != nil {
		return fail[models.Inspection](err, "Failed to fetch inspection")
	}
	insp, err := l.inspections.Get(ctx, id)
	if err != nil {
		return fail[models.Inspection](err, "Failed to fetch inspection")
	}
	return ok(*insp)
}

// CreateInspection stores a new inspection.
func (l *Local) CreateInspection(ctx context.Context, insp models.Inspection) Response[models.Inspection] {
	if err := l.delay(ctx, latencyCreate); err != nil {
		return fail[models.Inspection](err, "Failed to create inspection")
	}
	created, err := l.inspections.Create(ctx, insp)
	if err != nil {
		return fail[models.Inspection](err, "Failed to create inspection")
	}
	return ok(*created)
}

// UpdateInspection shallow-merges a partial update.
func (l *Local) UpdateInspection(ctx context.Context, id int, patch models.InspectionPatch) Response[models.Inspection] {
	if err := l.delay(ctx, latencyUpdate); err != nil {
		return fail[models.Inspection](err, "Failed to update inspection")
	}
	updated, err := l.inspections.Update(ctx, id, patch)
	if err != nil {
		return fail[models.Inspection](err, "Failed to update inspection")
	}
	return ok(*updated)
}

// DeleteInspection removes an inspection.
func (l *Local) DeleteInspection(ctx context.Context, id int) Response[Ack] {
	if err := l.delay(ctx, latencyDelete); err != nil {
		return fail[Ack](err, "Failed to delete inspection")
	}
	deleted, err := l.inspections.Delete(ctx, id)
	if err != nil {
		return fail[Ack](err, "Failed to delete inspection")
	}
	return ok(Ack{Success: deleted})
}

// GetProperties lists all properties.
func (l *Local) GetProperties(ctx context.Context) Response[[]models.Property] {
	if err := l.delay(ctx, latencyList); err != nil {
		return fail[[]models.Property](err, "Failed to fetch properties")
	}
	list, err := l.properties.List(ctx)
	if err != nil {
		return fail[[]models.Property](err, "Failed to fetch properties")
	}
	return ok(list)
}

// GetPropertyByID fetches one property.
func (l *Local) GetPropertyByID(ctx context.Context, id int) Response[models.Property] {
	if err := l.delay(ctx, latencyGet); err != nil {
		return fail[models.Property](err, "Failed to fetch property")
	}
	prop, err := l.properties.Get(ctx, id)
	if err != nil {
		return fail[models.Property](err, "Failed to fetch property")
	}
	return ok(*prop)
}

// CreateProperty stores a new property.
func (l *Local) CreateProperty(ctx context.Context, prop models.Property) Response[models.Property] {
	if err := l.delay(ctx, latencyCreate); err != nil {
		return fail[models.Property](err, "Failed to create property")
	}
	created, err := l.properties.Create(ctx, prop)
	if err != nil {
		return fail[models.Property](err, "Failed to create property")
	}
	return ok(*created)
}

// UpdateProperty shallow-merges a partial update.
func (l *Local) UpdateProperty(ctx context.Context, id int, patch models.PropertyPatch) Response[models.Property] {
	if err := l.delay(ctx, latencyUpdate); err != nil {
		return fail[models.Property](err, "Failed to update property")
	}
	updated, err := l.properties.Update(ctx, id, patch)
	if err != nil {
		return fail[models.Property](err, "Failed to update property")
	}
	return ok(*updated)
}

// DeleteProperty removes a property.
func (l *Local) DeleteProperty(ctx context.Context, id int) Response[Ack] {
	if err := l.delay(ctx, latencyDelete); err != nil {
		return fail[Ack](err, "Failed to delete property")
	}
	deleted, err := l.properties.Delete(ctx, id)
	if err != nil {
		return fail[Ack](err, "Failed to delete property")
	}
	return ok(Ack{Success: deleted})
}

// UploadImage registers an image reference.
func (l *Local) UploadImage(ctx context.Context, uri string, metadata models.ImageMetadata) Response[models.UploadedImage] {
	if err := l.delay(ctx, latencyUpload); err != nil {
		return fail[models.UploadedImage](err, "Failed to upload image")
	}
	img, err := l.media.UploadImage(ctx, uri, metadata)
	if err != nil {
		return fail[models.UploadedImage](err, "Failed to upload image")
	}
	return ok(*img)
}
