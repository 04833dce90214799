package scan

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/nao1215/protravel/internal/model"
)

// MaxScanBytes bounds how much of a response is inspected, so the cost of a
// scan stays constant no matter how large the exfiltrated file is.
const MaxScanBytes = 10_000_000

// pathPattern matches an optional run of '.' and '/' characters, a
// lowercase directory segment, then one or more path characters.
// It matches "/etc/shadow", "./config" and "../lib/libc.so.6" alike.
var pathPattern = regexp.MustCompile(`[./]*/[a-z]+[a-zA-Z0-9._/-]+`)

// Scanner extracts candidate paths from raw content.
// A Scanner is immutable and safe to reuse across scans.
type Scanner struct {
	// limit is the maximum number of leading bytes inspected.
	limit int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLimit overrides MaxScanBytes. Non-positive values are ignored.
func WithLimit(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewScanner creates a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{limit: MaxScanBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan returns the deduplicated, filtered, sorted set of paths referenced by
// content. Relative references are resolved against the directory of origin.
func (s *Scanner) Scan(origin string, content []byte) []string {
	if len(content) > s.limit {
		content = content[:s.limit]
	}

	seen := make(map[string]struct{})
	for _, match := range pathPattern.FindAll(content, -1) {
		resolved := Resolve(origin, string(match))
		if !Accept(resolved) {
			continue
		}
		seen[resolved] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Resolve turns a path reference found inside origin's content into an
// absolute, cleaned path. Absolute references are only cleaned; relative
// ones are joined to origin's directory first. A trailing separator on the
// reference is kept so directory references stay recognizable.
func Resolve(origin, ref string) string {
	var resolved string
	if model.IsAbsolute(ref) {
		resolved = path.Clean(ref)
	} else {
		resolved = path.Join(path.Dir(origin), ref)
	}

	if strings.HasSuffix(ref, model.PathSeparator) && resolved != model.PathSeparator {
		resolved += model.PathSeparator
	}
	return resolved
}
