package repoerrs

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable wraps driver and connectivity failures so callers can
	// tell a missing record from a store that could not answer at all.
	ErrUnavailable = errors.New("storage unavailable")
)
