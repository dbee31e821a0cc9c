// Package deps defines the package data model shared by the catalog, the
// registry gateway and the query layer.
//
// # Model
//
// A registry lists its packages as [ProjectRef] entries. Fetching one yields
// a [Project]: the entry plus the release tags of its repository and the
// [Manifest] of the newest release. Only the latest manifest matters; version
// constraints inside it are kept verbatim and never interpreted.
//
// # Registry
//
// [Registry] is the contract the catalog fetches through. Per-package
// failures are classified with [ErrNotFound] and [ErrUnauthorized]; callers
// use [IsAbsent] to tell a skippable package from a broken load.
//
// # Graph
//
// [BuildGraph] turns a project list into a [dag.Graph] whose edges point
// from a dependency to its dependent:
//
//	g := deps.BuildGraph(projects)
//	for _, d := range g.Dependents("purescript-prelude") {
//	    fmt.Println(d.Name, d.Transitive)
//	}
package deps
