package model

import (
	"errors"
	"fmt"
	"strings"
)

// PathSeparator is the separator used by target filesystem paths.
// Targets are assumed to be POSIX systems regardless of the local OS.
const PathSeparator = "/"

// ErrNotAbsolute is returned when a path does not start with the separator.
var ErrNotAbsolute = errors.New("path is not absolute")

// IsAbsolute reports whether p is a filesystem-absolute path on the target.
func IsAbsolute(p string) bool {
	return strings.HasPrefix(p, PathSeparator)
}

// CheckPath returns an error wrapping ErrNotAbsolute when p is not absolute.
func CheckPath(p string) error {
	if !IsAbsolute(p) {
		return fmt.Errorf("%w: %q", ErrNotAbsolute, p)
	}
	return nil
}
