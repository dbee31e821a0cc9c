package deps

import "github.com/matzehuels/pscdeps/pkg/dag"

// BuildGraph turns projects into a dependency graph. Every project becomes
// a node; every declared dependency on another known project becomes an
// edge from the dependency to the project. Dependencies outside the known
// set are dropped.
//
// Edges are emitted project by project in input order, each project's
// dependencies in name order, so a fixed input always yields the same edge
// sequence. Cycles are kept; the query side tolerates them. Nil projects and
// repeated names are skipped.
func BuildGraph(projects []*Project) *dag.Graph {
	g := dag.New()
	for _, p := range projects {
		if p == nil {
			continue
		}
		_ = g.AddNode(p.Name)
	}

	for _, p := range projects {
		if p == nil {
			continue
		}
		for _, dep := range p.DependencyNames() {
			if !g.HasNode(dep) {
				continue
			}
			_ = g.AddEdge(dag.Edge{From: dep, To: p.Name})
		}
	}
	return g
}
