// Package backend defines the request/response contract of the
// inspection backend and its two implementations: Local, an in-process
// backend with simulated network latency, and HTTPClient, which speaks
// the same contract to a remote server.
package backend

import (
	"context"
	"errors"

	"github.com/digiprop/inspect/internal/models"
	"github.com/digiprop/inspect/internal/service"
)

// Response is the uniform envelope returned by every backend operation.
// Expected failures never surface as Go errors: they are reported inside
// the envelope with Success=false.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Message is an acknowledgment payload carrying a human-readable note.
type Message struct {
	Message string `json:"message"`
}

// Ack is an acknowledgment payload carrying a boolean outcome.
type Ack struct {
	Success bool `json:"success"`
}

// Client is the backend contract the session manager and the workflow
// controller depend on. Every call may suspend on the network (or its
// simulation) and must be given a context.
type Client interface {
	// Auth
	Login(ctx context.Context, email, password string) Response[service.AuthResult]
	Signup(ctx context.Context, name, email, password string) Response[service.AuthResult]
	ForgotPassword(ctx context.Context, email string) Response[Message]
	VerifyCode(ctx context.Context, email, code string) Response[service.VerifyResult]
	ResetPassword(ctx context.Context, email, newPassword string) Response[Ack]

	// Users
	GetUserProfile(ctx context.Context, userID string) Response[models.Profile]

	// Inspections
	GetInspections(ctx context.Context) Response[[]models.Inspection]
	GetInspectionByID(ctx context.Context, id int) Response[models.Inspection]
	CreateInspection(ctx context.Context, insp models.Inspection) Response[models.Inspection]
	UpdateInspection(ctx context.Context, id int, patch models.InspectionPatch) Response[models.Inspection]
	DeleteInspection(ctx context.Context, id int) Response[Ack]

	// Properties
	GetProperties(ctx context.Context) Response[[]models.Property]
	GetPropertyByID(ctx context.Context, id int) Response[models.Property]
	CreateProperty(ctx context.Context, prop models.Property) Response[models.Property]
	UpdateProperty(ctx context.Context, id int, patch models.PropertyPatch) Response[models.Property]
	DeleteProperty(ctx context.Context, id int) Response[Ack]

	// Media
	UploadImage(ctx context.Context, uri string, metadata models.ImageMetadata) Response[models.UploadedImage]
}

// ok wraps a payload into a successful envelope.
func ok[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: &data}
}

// OK wraps a payload into a successful envelope.
func OK[T any](data T) Response[T] {
	return ok(data)
}

// Fail wraps an error into a failed envelope, substituting the generic
// message for undeclared errors.
func Fail[T any](err error, generic string) Response[T] {
	return fail[T](err, generic)
}

// IsDeclared reports whether the error is a declared failure mode of the
// wire contract, as opposed to an unexpected internal error.
func IsDeclared(err error) bool {
	for _, d := range declared {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}

// declared lists the failure modes whose messages travel to the client
// as-is. Anything else is reported with the operation's generic message.
var declared = []error{
	service.ErrUserNotFound,
	service.ErrInvalidPassword,
	service.ErrEmailInUse,
	service.ErrNoAccountFound,
	service.ErrNoCodeFound,
	service.ErrCodeExpired,
	service.ErrPasswordUpdate,
	service.ErrInspectionNotFound,
	service.ErrPropertyNotFound,
}

// fail wraps an error into a failed envelope, substituting the generic
// message for undeclared errors.
func fail[T any](err error, generic string) Response[T] {
	for _, d := range declared {
		if errors.Is(err, d) {
			return Response[T]{Success: false, Error: err.Error()}
		}
	}
	return Response[T]{Success: false, Error: generic}
}
