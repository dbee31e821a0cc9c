package registry

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/matzehuels/pscdeps/pkg/deps"
	pscerrors "github.com/matzehuels/pscdeps/pkg/errors"
	"github.com/matzehuels/pscdeps/pkg/integrations"
	"github.com/matzehuels/pscdeps/pkg/integrations/bower"
	"github.com/matzehuels/pscdeps/pkg/integrations/github"
	"github.com/matzehuels/pscdeps/pkg/repourl"
)

// DefaultKeyword selects the PureScript package universe.
const DefaultKeyword = "purescript"

// headRef is the ref used for repositories without release tags.
const headRef = "HEAD"

// Options configures a [Gateway]. Zero values select the public endpoints.
type Options struct {
	RegistryURL  string
	Keyword      string
	GitHubAPIURL string
	GitHubRawURL string
	GitHubToken  string
}

// Gateway is the Bower + GitHub [deps.Registry].
type Gateway struct {
	Bower   *bower.Client
	GitHub  *github.Client
	keyword string
}

// New creates a gateway.
func New(opts Options) *Gateway {
	keyword := opts.Keyword
	if keyword == "" {
		keyword = DefaultKeyword
	}
	gh := github.NewClient(opts.GitHubToken)
	gh.SetBaseURLs(opts.GitHubAPIURL, opts.GitHubRawURL)
	return &Gateway{
		Bower:   bower.NewClient(opts.RegistryURL),
		GitHub:  gh,
		keyword: keyword,
	}
}

// Name implements [deps.Registry].
func (g *Gateway) Name() string { return "bower" }

// Keyword returns the search keyword that defines the package universe.
func (g *Gateway) Keyword() string { return g.keyword }

// ListProjects returns every package matching the gateway's keyword.
func (g *Gateway) ListProjects(ctx context.Context) ([]deps.ProjectRef, error) {
	pkgs, err := g.Bower.Search(ctx, g.keyword)
	if err != nil {
		return nil, classify(err)
	}
	refs := make([]deps.ProjectRef, 0, len(pkgs))
	for _, p := range pkgs {
		if p.Name == "" {
			continue
		}
		refs = append(refs, deps.ProjectRef{Name: p.Name, URL: p.URL})
	}
	return refs, nil
}

// Canonicalize normalizes ref.URL and, for GitHub repositories, follows
// redirects to the repository's current location. A repository that no
// longer answers keeps its normalized URL.
func (g *Gateway) Canonicalize(ctx context.Context, ref deps.ProjectRef) (deps.ProjectRef, error) {
	ref.URL = repourl.Normalize(ref.URL)
	if _, _, ok := repourl.OwnerRepo(ref.URL); !ok {
		return ref, nil
	}
	final, err := g.GitHub.ResolveRepo(ctx, ref.URL)
	switch {
	case err == nil:
		if resolved := repourl.Normalize(final); repourl.IsCanonical(resolved) {
			ref.URL = resolved
		}
	case errors.Is(err, integrations.ErrNotFound), errors.Is(err, integrations.ErrUnauthorized):
	default:
		return ref, classify(err)
	}
	return ref, nil
}

// FetchProject looks name up in Bower and reads its tags and latest
// manifest from GitHub.
func (g *Gateway) FetchProject(ctx context.Context, name string) (*deps.Project, error) {
	pkg, err := g.Bower.Lookup(ctx, name)
	if err != nil {
		return nil, classify(err)
	}

	url := repourl.Normalize(pkg.URL)
	owner, repo, ok := repourl.OwnerRepo(url)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not hosted on GitHub (%s)", deps.ErrNotFound, name, pkg.URL)
	}

	tags, err := g.GitHub.Tags(ctx, owner, repo)
	if err != nil {
		return nil, classify(err)
	}
	versions := SortVersions(tags)

	ref := headRef
	if len(versions) > 0 {
		ref = versions[0]
	}
	data, err := g.GitHub.Manifest(ctx, owner, repo, ref)
	if err != nil {
		return nil, classify(err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s@%s: %v", deps.ErrNotFound, name, ref, err)
	}
	if manifest.Name == "" {
		manifest.Name = name
	}
	if manifest.Version == nil && ref != headRef {
		v := trimV(ref)
		manifest.Version = &v
	}

	return &deps.Project{
		Name:     name,
		URL:      url,
		Versions: versions,
		Latest:   *manifest,
	}, nil
}

// classify maps transport failure classes onto the catalog's and attaches
// the error code reported to users. Throttling is never an absent package:
// it fails the load so that the index is not pruned of packages that were
// merely unreachable.
func classify(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return pscerrors.Wrap(pscerrors.ErrCodeNotFound, fmt.Errorf("%w: %w", deps.ErrNotFound, err), "registry lookup")
	case errors.Is(err, integrations.ErrUnauthorized):
		return pscerrors.Wrap(pscerrors.ErrCodeUnauthorized, fmt.Errorf("%w: %w", deps.ErrUnauthorized, err), "registry lookup")
	case errors.Is(err, integrations.ErrRateLimited):
		return pscerrors.Wrap(pscerrors.ErrCodeNetwork, err, "GitHub rate limit exhausted, configure a GitHub token or retry later")
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return pscerrors.Wrap(pscerrors.ErrCodeTimeout, err, "registry request timed out")
	case errors.Is(err, integrations.ErrNetwork):
		return pscerrors.Wrap(pscerrors.ErrCodeNetwork, err, "registry request failed")
	default:
		return err
	}
}

var _ deps.Registry = (*Gateway)(nil)
