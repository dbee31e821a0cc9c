// Package registry implements [deps.Registry] on top of the Bower registry
// and GitHub.
//
// Bower only maps package names to repository URLs. Everything else is read
// from the repository: release tags through the GitHub API and the
// bower.json manifest of the newest release through the raw content host.
//
//	gw := registry.New(registry.Options{Keyword: "purescript"})
//	refs, err := gw.ListProjects(ctx)
//	project, err := gw.FetchProject(ctx, "purescript-arrays")
//
// Missing repositories, missing manifests and packages hosted outside GitHub
// are reported as [deps.ErrNotFound]; private repositories as
// [deps.ErrUnauthorized]. The catalog skips both.
package registry
