package consultation

import "errors"

var (
	ErrNotFound = errors.New("consultation not found")
	// ErrInvalidTransition is returned when a completed or cancelled
	// consultation is asked to change state.
	ErrInvalidTransition = errors.New("invalid consultation status transition")
)
