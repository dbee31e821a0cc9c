package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Edge is a directed connection From a dependency To one of its dependents.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is a directed graph of package names. Unlike a strict DAG it accepts
// cycles, self-loops and duplicate edges; consumers that need acyclic input
// (such as [TopoSort]) handle them explicitly.
//
// Edges are kept in insertion order so that results derived from a fixed
// input are reproducible. The zero value is not usable - use New.
// Graph is not safe for concurrent mutation.
type Graph struct {
	nodes    map[string]struct{}
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> dependents, in edge order
	incoming map[string][]string // nodeID -> dependencies, in edge order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if id is empty
// or ErrDuplicateNodeID if the node already exists.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[id]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
	return nil
}

// AddEdge appends a directed edge between two existing nodes. Duplicate
// edges and self-loops are accepted as-is.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether at least one edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	return slices.Contains(g.outgoing[from], to)
}

// Nodes returns the node IDs in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of edges leaving id, in edge order. For a
// dependency graph these are the packages that depend on id directly.
// The returned slice must not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the sources of edges entering id, in edge order.
// The returned slice must not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// Subgraph returns the graph induced by ids: the listed nodes that exist in
// g, plus every distinct edge between them. Self-loops are dropped.
func (g *Graph) Subgraph(ids []string) *Graph {
	sub := New()
	for _, id := range ids {
		if g.HasNode(id) {
			_ = sub.AddNode(id)
		}
	}
	for _, e := range g.edges {
		if e.From == e.To || !sub.HasNode(e.From) || !sub.HasNode(e.To) {
			continue
		}
		if !sub.HasEdge(e.From, e.To) {
			_ = sub.AddEdge(e)
		}
	}
	return sub
}
