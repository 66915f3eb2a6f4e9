package service

import "errors"

// Error kinds surfaced to the API layer. Handlers pick the HTTP status with
// errors.Is; everything else maps to an internal error.
var (
	// ErrInvalidRequest covers empty names, malformed actions and
	// references to recordings that do not exist.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConflictingState covers operations that clash with the current
	// session state: start while recording, duplicate recording name,
	// cancel with nothing active.
	ErrConflictingState = errors.New("conflicting state")

	// ErrDeviceUnavailable covers a missing physical controller or a
	// disconnected virtual device, detected before any session state is
	// created.
	ErrDeviceUnavailable = errors.New("device unavailable")
)

// IsInvalid reports whether err is an invalid-request rejection.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsConflict reports whether err is a conflicting-state rejection.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflictingState)
}
