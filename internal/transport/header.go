package transport

import (
	"fmt"
	"net/http"
	"strings"
)

// headerSeparator splits a raw header into name and value.
const headerSeparator = ": "

// ParseHeader splits a raw "Key: Value" header on its first separator.
func ParseHeader(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, headerSeparator)
	if !ok || strings.TrimSpace(key) == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeader, raw)
	}
	return strings.TrimSpace(key), value, nil
}

// ParseHeaders parses every raw header into an http.Header.
// Repeated names keep the last value, matching how they are sent.
func ParseHeaders(raw []string) (http.Header, error) {
	h := make(http.Header, len(raw))
	for _, r := range raw {
		key, value, err := ParseHeader(r)
		if err != nil {
			return nil, err
		}
		h.Set(key, value)
	}
	return h, nil
}

// headerInjectingTransport wraps an http.RoundTripper to attach the
// operator's headers to every request.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers http.Header
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for key, values := range t.headers {
		clone.Header.Del(key)
		for _, v := range values {
			clone.Header.Add(key, v)
		}
	}
	// net/http ignores a Host entry in Header; it must go on the request.
	if host := clone.Header.Get("Host"); host != "" {
		clone.Host = host
	}
	return t.base.RoundTrip(clone)
}
