package bower

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/pscdeps/pkg/integrations"
)

// DefaultRegistryURL is the public Bower registry.
const DefaultRegistryURL = "https://registry.bower.io"

// Package is one registry entry.
type Package struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Client talks to a Bower registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a registry client. An empty baseURL selects
// [DefaultRegistryURL].
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	return &Client{
		Client:  integrations.NewClient(map[string]string{"Accept": "application/json"}),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the registry root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Search returns every package whose name matches keyword.
func (c *Client) Search(ctx context.Context, keyword string) ([]Package, error) {
	var pkgs []Package
	url := c.baseURL + "/packages/search/" + integrations.PathEscape(keyword)
	if err := c.Get(ctx, url, &pkgs); err != nil {
		return nil, fmt.Errorf("bower search %q: %w", keyword, err)
	}
	return pkgs, nil
}

// Lookup returns the registered entry for name.
func (c *Client) Lookup(ctx context.Context, name string) (*Package, error) {
	var pkg Package
	url := c.baseURL + "/packages/" + integrations.PathEscape(name)
	if err := c.Get(ctx, url, &pkg); err != nil {
		return nil, fmt.Errorf("bower lookup %s: %w", name, err)
	}
	if pkg.URL == "" {
		return nil, fmt.Errorf("bower lookup %s: %w: no url registered", name, integrations.ErrNotFound)
	}
	if pkg.Name == "" {
		pkg.Name = name
	}
	return &pkg, nil
}
