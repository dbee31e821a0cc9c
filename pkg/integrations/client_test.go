package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/pscdeps/pkg/httputil"
)

func testClient(server *httptest.Server, headers map[string]string) *Client {
	c := NewClient(headers)
	c.SetHTTPClient(server.Client())
	c.SetRetryPolicy(httputil.Policy{Attempts: 3, Delay: time.Millisecond})
	return c
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("User-Agent") != UserAgent {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	var resp response
	if err := testClient(server, nil).Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server, map[string]string{"X-Default": "default", "X-Override": "default"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if got.Get("X-Default") != "default" || got.Get("X-Override") != "overridden" {
		t.Errorf("headers = %v", got)
	}
}

func TestClientGetBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "purescript-arrays"}`))
	}))
	defer server.Close()

	data, err := testClient(server, nil).GetBytes(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetBytes() error: %v", err)
	}
	if string(data) != `{"name": "purescript-arrays"}` {
		t.Errorf("GetBytes() = %q", data)
	}
}

func TestClientStatusClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		header    map[string]string
		want      error
		retryable bool
		calls     int32
	}{
		{"not found", http.StatusNotFound, nil, ErrNotFound, false, 1},
		{"unauthorized", http.StatusUnauthorized, nil, ErrUnauthorized, false, 1},
		{"forbidden", http.StatusForbidden, nil, ErrUnauthorized, false, 1},
		{"forbidden with quota left", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "12"}, ErrUnauthorized, false, 1},
		{"forbidden with exhausted quota", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "0"}, ErrRateLimited, true, 3},
		{"forbidden with retry-after", http.StatusForbidden, map[string]string{"Retry-After": "60"}, ErrRateLimited, true, 3},
		{"server error", http.StatusInternalServerError, nil, ErrNetwork, true, 3},
		{"too many requests", http.StatusTooManyRequests, nil, ErrRateLimited, true, 3},
		{"bad request", http.StatusBadRequest, nil, ErrNetwork, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			var v any
			err := testClient(server, nil).Get(context.Background(), server.URL, &v)
			if !errors.Is(err, tt.want) {
				t.Errorf("Get() error = %v, want %v", err, tt.want)
			}
			if errors.Is(err, ErrRateLimited) && errors.Is(err, ErrUnauthorized) {
				t.Errorf("Get() error = %v is both throttled and unauthorized", err)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("IsRetryable = %v, want %v", httputil.IsRetryable(err), tt.retryable)
			}
			if calls.Load() != tt.calls {
				t.Errorf("server saw %d calls, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestClientRetryRecovers(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	var v struct{ OK bool }
	if err := testClient(server, nil).Get(context.Background(), server.URL, &v); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !v.OK || calls.Load() != 2 {
		t.Errorf("ok = %v after %d calls", v.OK, calls.Load())
	}
}

func TestClientResolveFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old/repo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		http.Redirect(w, r, "/new/repo", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new/repo", func(w http.ResponseWriter, r *http.Request) {})
	server := httptest.NewServer(mux)
	defer server.Close()

	final, err := testClient(server, nil).Resolve(context.Background(), server.URL+"/old/repo")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if final != server.URL+"/new/repo" {
		t.Errorf("Resolve() = %q, want %q", final, server.URL+"/new/repo")
	}
}

func TestClientCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var v any
	err := testClient(server, nil).Get(ctx, server.URL, &v)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
}
