package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned for 401 and 403 responses: the resource
	// exists but is private, or the credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrRateLimited accompanies ErrNetwork for 429 responses and for 403
	// responses that carry an exhausted rate limit. A throttled request says
	// nothing about whether the resource exists.
	ErrRateLimited = errors.New("rate limited")
)

// UserAgent identifies pscdeps to registries.
const UserAgent = "pscdeps (+https://github.com/matzehuels/pscdeps)"

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// PathEscape percent-encodes a string for use as a single URL path segment.
func PathEscape(s string) string { return url.PathEscape(s) }
