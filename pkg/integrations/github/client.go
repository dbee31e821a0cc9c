package github

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/pscdeps/pkg/integrations"
)

const (
	// DefaultAPIURL is the GitHub REST API root.
	DefaultAPIURL = "https://api.github.com"
	// DefaultRawURL serves repository files verbatim.
	DefaultRawURL = "https://raw.githubusercontent.com"

	// ManifestFile is the Bower manifest at a repository root.
	ManifestFile = "bower.json"

	tagsPerPage = 100
	maxTagPages = 10
)

var (
	// usernames and orgs: alphanumeric or hyphen, not starting with a hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	validRepo  = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// Client reads tags and manifests from GitHub.
type Client struct {
	*integrations.Client
	raw    *integrations.Client
	apiURL string
	rawURL string
}

// NewClient creates a GitHub client. Pass an empty token for
// unauthenticated requests.
func NewClient(token string) *Client {
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client: integrations.NewClient(headers),
		raw:    integrations.NewClient(nil),
		apiURL: DefaultAPIURL,
		rawURL: DefaultRawURL,
	}
}

// SetBaseURLs points the client at different API and raw content roots.
// Empty values keep the current setting.
func (c *Client) SetBaseURLs(apiURL, rawURL string) {
	if apiURL != "" {
		c.apiURL = strings.TrimRight(apiURL, "/")
	}
	if rawURL != "" {
		c.rawURL = strings.TrimRight(rawURL, "/")
	}
}

// Raw returns the client used for raw content and redirect resolution.
func (c *Client) Raw() *integrations.Client { return c.raw }

// Tags returns the repository's tag names in the order GitHub lists them.
func (c *Client) Tags(ctx context.Context, owner, repo string) ([]string, error) {
	if err := checkRepo(owner, repo); err != nil {
		return nil, err
	}
	var names []string
	for page := 1; page <= maxTagPages; page++ {
		var data []tagResponse
		url := fmt.Sprintf("%s/repos/%s/%s/tags?per_page=%d&page=%d", c.apiURL, owner, repo, tagsPerPage, page)
		if err := c.Get(ctx, url, &data); err != nil {
			return nil, fmt.Errorf("github tags %s/%s: %w", owner, repo, err)
		}
		for _, t := range data {
			names = append(names, t.Name)
		}
		if len(data) < tagsPerPage {
			break
		}
	}
	return names, nil
}

// Manifest returns the raw bower.json of owner/repo at ref.
func (c *Client) Manifest(ctx context.Context, owner, repo, ref string) ([]byte, error) {
	if err := checkRepo(owner, repo); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s/%s/%s/%s", c.rawURL, owner, repo, integrations.PathEscape(ref), ManifestFile)
	data, err := c.raw.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("github manifest %s/%s@%s: %w", owner, repo, ref, err)
	}
	return data, nil
}

// ResolveRepo follows redirects from a repository URL and returns the URL
// that finally answered.
func (c *Client) ResolveRepo(ctx context.Context, repoURL string) (string, error) {
	final, err := c.raw.Resolve(ctx, repoURL)
	if err != nil {
		return "", fmt.Errorf("github resolve %s: %w", repoURL, err)
	}
	return final, nil
}

// checkRepo rejects names GitHub cannot host before they are spliced into
// a request path. Such a repository does not exist.
func checkRepo(owner, repo string) error {
	if !validOwner.MatchString(owner) || !validRepo.MatchString(repo) || repo == "." || repo == ".." {
		return fmt.Errorf("%w: invalid repository %q", integrations.ErrNotFound, owner+"/"+repo)
	}
	return nil
}

type tagResponse struct {
	Name string `json:"name"`
}
