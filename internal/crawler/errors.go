package crawler

import "errors"

var (
	// ErrMalformedPath is returned when the frontier yields a path that is not
	// absolute. The run is aborted because the snapshot or seeds are corrupt.
	ErrMalformedPath = errors.New("malformed path in frontier")

	// ErrSaveFrontier wraps a failure to persist the frontier on exit.
	ErrSaveFrontier = errors.New("failed to save frontier")
)
