// Package integrations provides the HTTP plumbing shared by the registry
// clients in its subpackages:
//
//   - [bower]: the Bower registry (package search and lookup)
//   - [github]: GitHub tags, raw manifests and repository redirects
//
// # Client Pattern
//
// Subpackage clients embed [Client] and keep a base URL that tests point at
// an httptest server:
//
//	client := bower.NewClient("")
//	refs, err := client.Search(ctx, "purescript")
//
// [Client] retries transient failures (network errors, 429 and 5xx) and
// classifies the rest: 404 becomes [ErrNotFound], 401 and 403 become
// [ErrUnauthorized]. It does not cache; the catalog persists what the
// gateway returns.
//
// [bower]: github.com/matzehuels/pscdeps/pkg/integrations/bower
// [github]: github.com/matzehuels/pscdeps/pkg/integrations/github
package integrations
