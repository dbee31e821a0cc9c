// Package repourl normalizes repository URLs and extracts their owners.
//
// Registries report repository locations in whatever form the package
// author typed: git://, git@host:, git+https://, with or without a .git
// suffix. Everything downstream (owner filters, rendered links, redirect
// resolution) works on the canonical https form produced by [Normalize].
package repourl

import (
	"net/url"
	"strings"
)

// CanonicalPrefix is the URL prefix of repositories whose owner can be
// derived from the path.
const CanonicalPrefix = "https://github.com/"

var schemeReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
	"http://github.com/", "https://github.com/",
)

// Normalize converts repository URL variants to canonical https form.
// It handles git@, git://, ssh:// and git+ prefixes and removes a trailing
// .git suffix or slash. URLs on other hosts keep their host and scheme.
// Returns an empty string if raw is blank.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "git+")
	if strings.HasPrefix(s, "www.github.com/") || strings.HasPrefix(s, "github.com/") {
		s = "https://" + strings.TrimPrefix(s, "www.")
	}
	s = strings.Replace(s, "://www.github.com/", "://github.com/", 1)
	s = schemeReplacer.Replace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// IsCanonical reports whether u points at the canonical repository host.
// Only canonical URLs have a meaningful [Owner].
func IsCanonical(u string) bool {
	return strings.HasPrefix(u, CanonicalPrefix)
}

// Owner returns the first path segment of u, which on the canonical host
// is the user or organization owning the repository. It returns "" when u
// does not parse or has no path.
func Owner(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// OwnerRepo splits a canonical URL into owner and repository name.
// ok is false for non-canonical URLs or paths with fewer than two segments.
func OwnerRepo(u string) (owner, repo string, ok bool) {
	u = Normalize(u)
	if !IsCanonical(u) {
		return "", "", false
	}
	rest := strings.TrimPrefix(u, CanonicalPrefix)
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
