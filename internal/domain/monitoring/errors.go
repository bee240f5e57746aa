package monitoring

import "errors"

var (
	ErrNotFound = errors.New("health record not found")
	// ErrInsufficientData is returned by trend analysis with fewer than two
	// records.
	ErrInsufficientData = errors.New("not enough records to analyze trends")
)
