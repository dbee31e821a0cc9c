package bower

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/matzehuels/pscdeps/pkg/integrations"
)

func testClient(server *httptest.Server) *Client {
	c := NewClient(server.URL + "/")
	c.SetHTTPClient(server.Client())
	return c
}

func TestNewClientDefaults(t *testing.T) {
	if got := NewClient("").BaseURL(); got != DefaultRegistryURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultRegistryURL)
	}
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packages/search/purescript" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]Package{
			{Name: "purescript-prelude", URL: "git://github.com/purescript/purescript-prelude.git"},
			{Name: "purescript-arrays", URL: "git://github.com/purescript/purescript-arrays.git"},
		})
	}))
	defer server.Close()

	pkgs, err := testClient(server).Search(context.Background(), "purescript")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"purescript-prelude", "purescript-arrays"}) {
		t.Errorf("Search() names = %v", names)
	}
}

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/packages/purescript-prelude":
			w.Write([]byte(`{"name":"purescript-prelude","url":"git://github.com/purescript/purescript-prelude.git"}`))
		case "/packages/purescript-unnamed":
			w.Write([]byte(`{"url":"https://github.com/bob/purescript-unnamed"}`))
		case "/packages/purescript-empty":
			w.Write([]byte(`{"name":"purescript-empty"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	c := testClient(server)
	ctx := context.Background()

	tests := []struct {
		name    string
		wantURL string
		wantErr error
	}{
		{"purescript-prelude", "git://github.com/purescript/purescript-prelude.git", nil},
		{"purescript-unnamed", "https://github.com/bob/purescript-unnamed", nil},
		{"purescript-empty", "", integrations.ErrNotFound},
		{"purescript-missing", "", integrations.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := c.Lookup(ctx, tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Lookup() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup() error: %v", err)
			}
			if pkg.Name != tt.name || pkg.URL != tt.wantURL {
				t.Errorf("Lookup() = %+v", pkg)
			}
		})
	}
}
