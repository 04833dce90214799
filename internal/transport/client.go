package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

// Defaults applied by NewClient.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	DefaultMaxBodySize = 256 * 1024 * 1024
)

// Client fetches paths from the target.
//
// Redirects are never followed. A 3xx response is returned to the caller
// as a *StatusError like any other non-200 status.
type Client struct {
	// baseURL is the URL prefix each path is appended to.
	baseURL string

	// http is the configured HTTP client.
	http *http.Client

	// limiter throttles requests. Nil means unlimited.
	limiter *rate.Limiter

	// userAgent is sent unless the operator's headers override it.
	userAgent string

	// maxBodySize bounds how many bytes of a response are read.
	maxBodySize int64

	timeout     time.Duration
	headers     http.Header
	proxyAddr   string
	insecureTLS bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHeaders attaches headers to every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		c.headers = h.Clone()
	}
}

// WithProxy routes requests through a SOCKS5 proxy at host:port.
func WithProxy(addr string) Option {
	return func(c *Client) {
		c.proxyAddr = addr
	}
}

// WithInsecureTLS disables certificate verification.
func WithInsecureTLS(insecure bool) Option {
	return func(c *Client) {
		c.insecureTLS = insecure
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize bounds the bytes read per response. Non-positive values
// keep the default.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithRate limits requests to rps per second. Zero or less means unlimited.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// NewClient creates a Client for baseURL.
// It validates the proxy address but does not contact the target.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		baseURL:     baseURL,
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		headers:     make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		Proxy: nil,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: c.insecureTLS, //nolint:gosec // Operator opt-in for self-signed targets
		},
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	if c.proxyAddr != "" {
		if !IsValidProxyAddress(c.proxyAddr) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.DialContext = dialContext(dialer)
	}

	c.http = &http.Client{
		Transport: &headerInjectingTransport{
			base:    transport,
			headers: c.headers,
		},
		Timeout: c.timeout,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return c, nil
}

// dialContext adapts a proxy.Dialer to http.Transport.DialContext,
// using the context-aware path when the dialer supports it.
func dialContext(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(_ context.Context, network, addr string) (net.Conn, error) {
		return d.Dial(network, addr)
	}
}

// URL returns the request URL for path.
func (c *Client) URL(path string) string {
	return c.baseURL + path
}

// BaseURL returns the configured target prefix.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch requests path and returns the response body.
// Any status other than 200 yields a *StatusError; network problems are
// returned wrapped. An empty body with status 200 is not an error. A body
// longer than the configured maximum yields ErrBodyTooLarge, never a
// truncated prefix.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // Best effort
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", path, err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", ErrBodyTooLarge, path, c.maxBodySize)
	}
	return body, nil
}

// IsValidProxyAddress checks that address is "host:port" with a port in
// 1-65535. Bracketed IPv6 hosts are accepted.
func IsValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return false
	}

	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum >= 1
}
