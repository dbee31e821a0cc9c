// Package dag provides the directed package graph and the reverse-dependency
// query that runs on top of it.
//
// # Overview
//
// Nodes are package names. An [Edge] points from a dependency to one of its
// dependents, so following edges forward answers "who depends on X":
//
//	g := dag.New()
//	g.AddNode("prelude")
//	g.AddNode("arrays")
//	g.AddEdge(dag.Edge{From: "prelude", To: "arrays"}) // arrays depends on prelude
//
// Despite the name, a [Graph] does not reject cycles: registry data is not
// guaranteed to be acyclic, and the query algorithms tolerate cycles,
// self-loops and duplicate edges instead of failing on them.
//
// # Reverse dependencies
//
// [Graph.Dependents] computes the transitive closure of a root, restricts
// the graph to that closure, and orders the result with [TopoSort] so that
// every package is listed after the packages it depends on. Each row is
// classified as direct (the package declares the root) or transitive.
//
//	for _, d := range g.Dependents("prelude") {
//	    fmt.Println(d.Name, d.Transitive)
//	}
//
// The ordering is deterministic: ties are broken by name, never by map or
// traversal order.
package dag
