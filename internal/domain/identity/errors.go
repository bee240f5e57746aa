package identity

import "errors"

var (
	ErrNotFound            = errors.New("user not found")
	ErrDuplicateNationalID = errors.New("national id already registered")
	ErrKindChange          = errors.New("user type cannot change")
	// ErrInvalidCredentials covers both an unknown national id and a wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid national id or password")
)
