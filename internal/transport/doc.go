// Package transport fetches filesystem paths from a vulnerable HTTP server.
//
// The Client appends each path to a base URL by plain string concatenation,
// so the traversal sequence lives in the base URL supplied by the operator
// (e.g. "http://target/static/../../.."). Redirects are never followed and
// any status other than 200 counts as a failure.
//
// Requests can be routed through a SOCKS5 proxy and throttled with a token
// bucket. Operator-supplied headers are attached to every request.
package transport
