package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/matzehuels/pscdeps/pkg/integrations"
)

func testClient(t *testing.T, server *httptest.Server, token string) *Client {
	t.Helper()
	c := NewClient(token)
	c.SetBaseURLs(server.URL+"/api", server.URL+"/raw")
	c.SetHTTPClient(server.Client())
	c.Raw().SetHTTPClient(server.Client())
	return c
}

func TestClientTags(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/repos/purescript/purescript-arrays/tags" {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]tagResponse{{Name: "v3.0.0"}, {Name: "v2.1.0"}})
	}))
	defer server.Close()

	tags, err := testClient(t, server, "secret").Tags(context.Background(), "purescript", "purescript-arrays")
	if err != nil {
		t.Fatalf("Tags() error: %v", err)
	}
	if !slices.Equal(tags, []string{"v3.0.0", "v2.1.0"}) {
		t.Errorf("Tags() = %v", tags)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestClientTagsPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var page []tagResponse
		switch r.URL.Query().Get("page") {
		case "1":
			for i := range tagsPerPage {
				page = append(page, tagResponse{Name: fmt.Sprintf("v1.0.%d", i)})
			}
		case "2":
			page = []tagResponse{{Name: "v0.1.0"}}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	tags, err := testClient(t, server, "").Tags(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("Tags() error: %v", err)
	}
	if len(tags) != tagsPerPage+1 || tags[len(tags)-1] != "v0.1.0" {
		t.Errorf("Tags() returned %d tags, last %q", len(tags), tags[len(tags)-1])
	}
}

func TestClientTagsMissingRepo(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := testClient(t, server, "").Tags(context.Background(), "nobody", "nothing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Tags() error = %v, want ErrNotFound", err)
	}
}

func TestClientManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/raw/purescript/purescript-arrays/v3.0.0/bower.json" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("raw requests must not carry credentials")
		}
		w.Write([]byte(`{"name":"purescript-arrays"}`))
	}))
	defer server.Close()

	data, err := testClient(t, server, "secret").Manifest(context.Background(), "purescript", "purescript-arrays", "v3.0.0")
	if err != nil {
		t.Fatalf("Manifest() error: %v", err)
	}
	if string(data) != `{"name":"purescript-arrays"}` {
		t.Errorf("Manifest() = %s", data)
	}
}

func TestClientResolveRepo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old-owner/repo", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new-owner/repo", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new-owner/repo", func(w http.ResponseWriter, r *http.Request) {})
	server := httptest.NewServer(mux)
	defer server.Close()

	got, err := testClient(t, server, "").ResolveRepo(context.Background(), server.URL+"/old-owner/repo")
	if err != nil {
		t.Fatalf("ResolveRepo() error: %v", err)
	}
	if got != server.URL+"/new-owner/repo" {
		t.Errorf("ResolveRepo() = %q", got)
	}
}

func TestClientRejectsInvalidRepository(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[]`))
	}))
	defer server.Close()
	c := testClient(t, server, "")

	tests := []struct {
		owner, repo string
	}{
		{"-bad", "repo"},
		{"alice", ""},
		{"alice", "a/b"},
		{"../etc", "passwd"},
		{"alice", ".."},
	}
	for _, tt := range tests {
		t.Run(tt.owner+"/"+tt.repo, func(t *testing.T) {
			if _, err := c.Tags(context.Background(), tt.owner, tt.repo); !errors.Is(err, integrations.ErrNotFound) {
				t.Errorf("Tags() error = %v, want ErrNotFound", err)
			}
			if _, err := c.Manifest(context.Background(), tt.owner, tt.repo, "HEAD"); !errors.Is(err, integrations.ErrNotFound) {
				t.Errorf("Manifest() error = %v, want ErrNotFound", err)
			}
		})
	}
	if calls != 0 {
		t.Errorf("server saw %d requests, want 0", calls)
	}
}
