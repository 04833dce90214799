package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoTarget is returned when no target URL is given.
	ErrNoTarget = errors.New("no target specified: provide the vulnerable URL prefix")

	// ErrInvalidHeader is returned when a header is not in "Key: Value" form.
	ErrInvalidHeader = errors.New("invalid header: expected \"Key: Value\"")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRate is returned when the request rate is negative.
	// Zero means unlimited.
	ErrInvalidRate = errors.New("invalid rate: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Zero means the transport default.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrRelativeSeed is returned when a --path seed is not absolute.
	ErrRelativeSeed = errors.New("invalid seed path: must start with /")

	// ErrInvalidProxy is returned when the proxy is not host:port.
	ErrInvalidProxy = errors.New("invalid proxy address: expected host:port")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
