// Package pkg holds the pscdeps libraries.
//
// # Overview
//
// pscdeps answers one question about the PureScript ecosystem: which
// packages in the Bower registry depend on a given package, directly or
// through others. The pkg directory is organized by stage:
//
//  1. [integrations] and [registry] - Bower and GitHub clients, and the
//     gateway that turns their responses into project metadata
//  2. [cache] and [catalog] - durable stores and the read-through cache
//     that fills them
//  3. [deps], [dag] and [query] - the project model, the dependency graph
//     and the reverse-dependency query
//  4. [pipeline] - load a snapshot and query it
//  5. [render] and [server] - text, markdown, JSON, DOT and SVG output, and
//     the HTTP API
//
// # Architecture
//
//	Bower registry + GitHub
//	         ↓
//	    [registry] (list, canonicalize, fetch)
//	         ↓
//	    [catalog] over a [cache.Store]
//	         ↓
//	    [deps.BuildGraph] → [dag.Graph]
//	         ↓
//	    [query.Run] (dependents, owner filter)
//	         ↓
//	    [render] / [server]
//
// # Quick Start
//
//	store := cache.NewMemoryStore()
//	gw := registry.New(registry.Options{})
//	cat := catalog.New(store, gw, nil)
//
//	rows, err := pipeline.NewRunner(cat, nil).Lookup(ctx, query.Options{
//	    Root:   "purescript-arrays",
//	    Owners: []string{"purescript"},
//	})
//	if err != nil {
//	    return err
//	}
//	render.WriteRows(os.Stdout, render.FormatText, rows, render.Options{})
//
// # Supporting Packages
//
//   - [config]: TOML configuration with environment overrides
//   - [errors]: coded errors shared by the CLI and the API
//   - [httputil]: retry with backoff
//   - [observability]: hooks for loads, queries, cache and HTTP traffic
//   - [repourl]: repository URL normalization and owner extraction
//   - [buildinfo]: version information
//
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/integrations
// [registry]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/registry
// [cache]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/cache
// [cache.Store]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/cache#Store
// [catalog]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/catalog
// [deps]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/deps
// [deps.BuildGraph]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/deps#BuildGraph
// [dag]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/dag
// [dag.Graph]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/dag#Graph
// [query]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/query
// [query.Run]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/query#Run
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/observability
// [repourl]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/repourl
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pscdeps/pkg/buildinfo
package pkg
