package scan

import (
	"strings"

	"github.com/nao1215/protravel/internal/model"
)

// deviceRoot holds device files. They carry no byte payload worth
// mirroring, and reading some of them blocks forever.
const deviceRoot = "/dev/"

// Accept reports whether a discovered path should be fetched.
//
// Rules, in order:
//  1. Empty or non-absolute input is rejected
//  2. Paths under the device root are rejected
//  3. Paths ending in a separator are directories and are rejected
//
// Accept never panics; malformed input simply returns false.
func Accept(p string) bool {
	if !model.IsAbsolute(p) {
		return false
	}
	if strings.HasPrefix(p, deviceRoot) {
		return false
	}
	if strings.HasSuffix(p, model.PathSeparator) {
		return false
	}
	if strings.ContainsRune(p, 0) {
		return false
	}
	return true
}

// FilterPaths returns the paths accepted by Accept, preserving order.
func FilterPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if Accept(p) {
			out = append(out, p)
		}
	}
	return out
}
