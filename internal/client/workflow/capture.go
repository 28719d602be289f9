package workflow

import (
	"context"
	"errors"
)

// ErrPermissionDenied is returned by a CaptureDevice when the user has
// refused camera or media-library access.
var ErrPermissionDenied = errors.New("permission denied")

// CaptureResult is the outcome of a capture attempt. Canceled means the
// user backed out; it is not an error.
type CaptureResult struct {
	Canceled bool
	URI      string
}

// CaptureDevice abstracts the camera and the media library.
type CaptureDevice interface {
	// TakePhoto opens the camera and returns the captured image URI.
	TakePhoto(ctx context.Context) (CaptureResult, error)
	// PickFromLibrary opens the media library picker.
	PickFromLibrary(ctx context.Context) (CaptureResult, error)
}
