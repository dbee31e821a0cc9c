// Package pipeline runs the load → build → query sequence shared by the CLI
// and the HTTP server.
//
// # Stages
//
//  1. Load: read every project through the catalog, fetching misses
//  2. Build: turn the project set into a dependency graph
//  3. Query: list and filter the dependents of one package
//
// Load and Build happen once per [Snapshot]; any number of queries can then
// run against it:
//
//	runner := pipeline.NewRunner(cat, logger)
//	snap, err := runner.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	rows, err := snap.Query(ctx, query.Options{Root: "purescript-prelude"})
//
// [Runner.Lookup] validates the query before loading so a malformed request
// never touches the registry.
package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/pscdeps/pkg/dag"
	"github.com/matzehuels/pscdeps/pkg/deps"
	"github.com/matzehuels/pscdeps/pkg/observability"
	"github.com/matzehuels/pscdeps/pkg/query"
)

// Snapshot is a loaded project set and its dependency graph. It is
// read-only and safe for concurrent queries.
type Snapshot struct {
	Projects []*deps.Project
	Graph    *dag.Graph
	LoadedAt time.Time

	// Cycles holds one back edge per dependency cycle found while building.
	Cycles []dag.Edge

	index map[string]*deps.Project
}

// NewSnapshot builds the graph for projects.
func NewSnapshot(projects []*deps.Project) *Snapshot {
	g := deps.BuildGraph(projects)
	return &Snapshot{
		Projects: projects,
		Graph:    g,
		LoadedAt: time.Now(),
		Cycles:   dag.BackEdges(g),
		index:    deps.Index(projects),
	}
}

// Project returns the project named name.
func (s *Snapshot) Project(name string) (*deps.Project, bool) {
	p, ok := s.index[name]
	return p, ok
}

// Names returns every project name in index order.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		names = append(names, p.Name)
	}
	return names
}

// Query lists the dependents of opts.Root.
func (s *Snapshot) Query(ctx context.Context, opts query.Options) ([]query.Row, error) {
	hooks := observability.Pipeline()
	hooks.OnQueryStart(ctx, opts.Root)
	start := time.Now()

	rows, err := query.Run(s.Projects, s.Graph, opts)
	hooks.OnQueryComplete(ctx, opts.Root, len(rows), time.Since(start), err)
	return rows, err
}
