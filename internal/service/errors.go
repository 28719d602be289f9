// Package service implements the business logic of the inspection
// backend: authentication and password recovery, inspection and property
// CRUD, and image uploads. Persistence is delegated to the repositories.
package service

import "errors"

// Declared failure modes. The messages are part of the wire contract and
// are surfaced verbatim in response envelopes, so they keep the
// user-facing casing.
var (
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidPassword    = errors.New("Invalid password")
	ErrEmailInUse         = errors.New("Email already in use")
	ErrNoAccountFound     = errors.New("No account found with this email")
	ErrNoCodeFound        = errors.New("No verification code found for this email")
	ErrCodeExpired        = errors.New("Verification code has expired")
	ErrPasswordUpdate     = errors.New("Failed to update password")
	ErrInspectionNotFound = errors.New("Inspection not found")
	ErrPropertyNotFound   = errors.New("Property not found")
)
