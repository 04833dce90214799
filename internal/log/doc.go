// Package log provides slog-based logging that keeps secrets out of log output.
//
// Crawls routinely carry session cookies and bearer tokens in -H headers,
// and exfiltrated files routinely contain password hashes and private keys.
// SecureHandler masks both before a record reaches the underlying handler:
//   - attributes whose key names a credential (cookie, token, password, ...)
//   - string values that look like secrets (bearer/basic tokens, JWTs,
//     crypt(3) hashes, PEM private key markers, AWS access keys)
//   - raw "Key: Value" header strings and slices of them, whose value is
//     masked when the header name is sensitive
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request headers", "headers", []string{"Cookie: session=abc"})
//	// headers="[Cookie: ***REDACTED***]"
package log
