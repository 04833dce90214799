package handler

import (
	"sort"

	"github.com/nao1215/protravel/internal/model"
)

// Well-known paths with a registered handler.
const (
	PathPasswd  = "/etc/passwd"
	PathShadow  = "/etc/shadow"
	PathVersion = "/proc/version"
	PathEnviron = "/proc/self/environ"
)

// Result is what a handler extracted from one file.
type Result struct {
	// Paths are new candidate paths. They are filtered by the engine.
	Paths []string

	// Notices are advisories to print immediately.
	Notices []model.Notice
}

// Func extracts a Result from the content fetched for path.
// A Func must not panic on malformed content; bad records are skipped.
type Func func(path string, content []byte) Result

// Registry is an immutable table from exact path to handler.
type Registry struct {
	handlers map[string]Func
}

// Entry binds a path to its handler when building a Registry.
type Entry struct {
	Path string
	Func Func
}

// NewRegistry builds a Registry from entries. Later entries for the same
// path replace earlier ones.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{handlers: make(map[string]Func, len(entries))}
	for _, e := range entries {
		if e.Func == nil {
			continue
		}
		r.handlers[e.Path] = e.Func
	}
	return r
}

// Default returns the registry with every built-in handler.
func Default() *Registry {
	return NewRegistry(
		Entry{Path: PathPasswd, Func: Passwd},
		Entry{Path: PathShadow, Func: Shadow},
		Entry{Path: PathVersion, Func: Version},
		Entry{Path: PathEnviron, Func: Environ},
	)
}

// Dispatch runs the handler registered for path, if any.
// Unregistered paths yield an empty Result.
func (r *Registry) Dispatch(path string, content []byte) Result {
	if r == nil {
		return Result{}
	}
	fn, ok := r.handlers[path]
	if !ok {
		return Result{}
	}
	return fn(path, content)
}

// Has reports whether a handler is registered for path.
func (r *Registry) Has(path string) bool {
	if r == nil {
		return false
	}
	_, ok := r.handlers[path]
	return ok
}

// Paths lists the registered paths in lexical order.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.handlers))
	for p := range r.handlers {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
