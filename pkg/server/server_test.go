package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/pscdeps/pkg/deps"
	"github.com/matzehuels/pscdeps/pkg/pipeline"
)

func project(name, url string, dependsOn ...string) *deps.Project {
	ds := make(map[string]string, len(dependsOn))
	for _, d := range dependsOn {
		ds[d] = "*"
	}
	return &deps.Project{Name: name, URL: url, Latest: deps.Manifest{Name: name, Dependencies: ds}}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	snap := pipeline.NewSnapshot([]*deps.Project{
		project("a", "https://github.com/alice/a"),
		project("b", "https://github.com/alice/b", "a"),
		project("c", "git://github.com/bob/c.git", "b"),
	})
	s, err := New(snap, nil, Options{Version: "test"})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var sb strings.Builder
	if _, err := io.Copy(&sb, resp.Body); err != nil {
		t.Fatal(err)
	}
	return resp, sb.String()
}

func TestNewRequiresSnapshot(t *testing.T) {
	if _, err := New(nil, nil, Options{}); err == nil {
		t.Error("New(nil) should fail")
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.Unmarshal([]byte(body), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "healthy" || h.Packages != 3 || h.Edges != 2 || h.Version != "test" {
		t.Errorf("health = %+v", h)
	}
}

func TestPackages(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/v1/packages")
	var pkgs []packageInfo
	if err := json.Unmarshal([]byte(body), &pkgs); err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 3 || pkgs[1].Name != "b" || pkgs[1].Dependencies[0] != "a" {
		t.Errorf("packages = %+v", pkgs)
	}
	if pkgs[0].Dependencies == nil {
		t.Error("dependencies should encode as [] for leaf packages")
	}
}

func TestDependents(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all", "", []string{"b", "c*"}},
		{"owner filter", "?owners=alice", []string{"b"}},
		{"owner list", "?owners=%20bob%20,alice", []string{"b", "c*"}},
		{"direct", "?direct=true", []string{"b"}},
		{"unknown root", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := "a"
			if tt.name == "unknown root" {
				root = "zzz"
			}
			resp, body := get(t, ts, "/v1/dependents/"+root+tt.query)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			var got dependentsResponse
			if err := json.Unmarshal([]byte(body), &got); err != nil {
				t.Fatal(err)
			}
			if got.Root != root || got.Dependents == nil {
				t.Errorf("response = %s", body)
			}
			var names []string
			for _, r := range got.Dependents {
				n := r.Name
				if r.Transitive {
					n += "*"
				}
				names = append(names, n)
			}
			if strings.Join(names, " ") != strings.Join(tt.want, " ") {
				t.Errorf("dependents = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestDependentsFormats(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"text", "text/plain; charset=utf-8", "c* - https://github.com/bob/c\n"},
		{"markdown", "text/markdown; charset=utf-8", "- [ ] [b](https://github.com/alice/b)\n"},
		{"dot", "text/vnd.graphviz; charset=utf-8", `"a" -> "b";`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp, body := get(t, ts, "/v1/dependents/a?format="+tt.format)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, body)
			}
		})
	}
}

func TestDependentsBadRequests(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path string
		code string
	}{
		{"/v1/dependents/a?direct=maybe", "INVALID_INPUT"},
		{"/v1/dependents/a?format=pdf", "INVALID_FORMAT"},
		{"/v1/dependents/a?owners=alice,a%2Fb", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", resp.StatusCode, body)
			}
			var e errorBody
			if err := json.Unmarshal([]byte(body), &e); err != nil {
				t.Fatal(err)
			}
			if e.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Error.Code, tt.code)
			}
			if e.Error.RequestID == "" {
				t.Error("error body should carry the request ID")
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/v2/nothing")
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "NOT_FOUND") {
		t.Errorf("status = %d, body = %s", resp.StatusCode, body)
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts, "/healthz")
	if id := resp.Header.Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request ID = %q, want a UUID", id)
	}

	resp, _ = get(t, ts, "/healthz", RequestIDHeader, "caller-id")
	if id := resp.Header.Get(RequestIDHeader); id != "caller-id" {
		t.Errorf("request ID = %q, want caller-id", id)
	}
}

func TestResponseCache(t *testing.T) {
	snap := pipeline.NewSnapshot([]*deps.Project{
		project("a", "https://github.com/alice/a"),
		project("b", "https://github.com/alice/b", "a"),
	})
	s, err := New(snap, nil, Options{CacheSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	get(t, ts, "/v1/dependents/a?owners=bob,alice")
	get(t, ts, "/v1/dependents/a?owners=alice,bob")
	if s.responses.Len() != 1 {
		t.Errorf("equivalent queries should share a cache entry, have %d", s.responses.Len())
	}
	get(t, ts, "/v1/dependents/a?format=text")
	get(t, ts, "/v1/dependents/b")
	if s.responses.Len() != 2 {
		t.Errorf("cache should be bounded to 2 entries, have %d", s.responses.Len())
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	snap := pipeline.NewSnapshot(nil)
	s, err := New(snap, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
