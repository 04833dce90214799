package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProxyAddress is returned when the proxy address is not host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrInvalidHeader is returned when a header is not in "Key: Value" form.
	ErrInvalidHeader = errors.New(`invalid header: expected "Key: Value"`)

	// ErrEmptyBaseURL is returned when the client has no target.
	ErrEmptyBaseURL = errors.New("empty base URL")

	// ErrBodyTooLarge is returned when a response exceeds the body size limit.
	ErrBodyTooLarge = errors.New("response body too large")
)

// StatusError reports a response whose status was not 200.
// Redirects surface as StatusError too because they are never followed.
type StatusError struct {
	// Path is the filesystem path that was requested.
	Path string

	// StatusCode is the HTTP status returned by the target.
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.Path)
}
