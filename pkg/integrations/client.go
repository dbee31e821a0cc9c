package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/pscdeps/pkg/httputil"
	"github.com/matzehuels/pscdeps/pkg/observability"
)

// Client provides shared HTTP functionality for registry API clients.
// It handles retries, status classification and common request headers.
// Responses are not cached here; durability is the catalog's job.
type Client struct {
	http    *http.Client
	headers map[string]string
	retry   httputil.Policy
}

// NewClient creates a Client with default headers applied to every request.
// Pass nil for headers if no default headers are needed.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		headers: headers,
		retry:   httputil.DefaultPolicy,
	}
}

// SetHTTPClient replaces the underlying HTTP client, e.g. with an
// httptest server's client.
func (c *Client) SetHTTPClient(hc *http.Client) { c.http = hc }

// SetRetryPolicy replaces the retry policy for transient failures.
func (c *Client) SetRetryPolicy(p httputil.Policy) { c.retry = p }

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Transient failures are retried.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	return c.retry.Do(ctx, func() error {
		resp, err := c.do(ctx, http.MethodGet, url, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("decode %s: %w", url, err)
		}
		return nil
	})
}

// GetBytes performs an HTTP GET and returns the raw body. Useful for
// files served verbatim, such as manifests from a raw content host.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := c.retry.Do(ctx, func() error {
		resp, err := c.do(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		return nil
	})
	return data, err
}

// Resolve issues a HEAD request for rawURL, following redirects, and
// returns the URL that finally answered. Moved or renamed repositories
// resolve to their new location.
func (c *Client) Resolve(ctx context.Context, rawURL string) (string, error) {
	var final string
	err := c.retry.Do(ctx, func() error {
		resp, err := c.do(ctx, http.MethodHead, rawURL, nil)
		if err != nil {
			return err
		}
		resp.Body.Close()
		final = resp.Request.URL.String()
		return nil
	})
	return final, err
}

func (c *Client) do(ctx context.Context, method, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %w", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || (code == http.StatusForbidden && rateLimited(resp.Header)):
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %w: status %d", ErrNetwork, ErrRateLimited, code)}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// rateLimited reports whether a 403 is GitHub's throttling response rather
// than an access denial.
func rateLimited(h http.Header) bool {
	return h.Get("X-RateLimit-Remaining") == "0" || h.Get("Retry-After") != ""
}
