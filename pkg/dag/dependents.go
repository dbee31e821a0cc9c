package dag

import "slices"

// Dependent is one row of a reverse-dependency query.
type Dependent struct {
	Name string `json:"name"`
	// Transitive is false when the package declares the queried root itself,
	// true when it was reached only through intermediate packages.
	Transitive bool `json:"transitive"`
}

// Closure returns every node reachable from root by following edges in
// their From→To direction, in discovery order and without duplicates.
//
// For a dependency graph this is the set of all direct and indirect
// dependents of root. Root itself is only included when a cycle leads back
// to it. An unknown root yields an empty result.
func (g *Graph) Closure(root string) []string {
	var result []string
	seen := make(map[string]bool)
	pending := []string{root}
	for len(pending) > 0 {
		item := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, dep := range g.Children(item) {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			result = append(result, dep)
			pending = append(pending, dep)
		}
	}
	return result
}

// Dependents returns every package that depends on root, directly or
// transitively, ordered so that each package comes after everything it
// depends on within the result. Ties are broken by name, so repeated calls
// on the same graph return identical output.
//
// The root is never part of the result. A root without dependents, or one
// that is not in the graph at all, yields an empty slice.
func (g *Graph) Dependents(root string) []Dependent {
	members := closureSet(root, g.Closure(root))
	order := TopoSort(g.restrict(members))

	result := make([]Dependent, 0, len(order))
	for _, name := range order {
		if name == root {
			continue
		}
		result = append(result, Dependent{
			Name:       name,
			Transitive: !g.HasEdge(root, name),
		})
	}
	return result
}

// closureSet combines root with its closure, sorted by name and deduplicated.
func closureSet(root string, closure []string) []string {
	members := append([]string{root}, closure...)
	slices.Sort(members)
	return slices.Compact(members)
}

// restrict returns the edges of g whose endpoints both belong to members,
// grouped by target in members order. Each (source, target) pair appears once.
func (g *Graph) restrict(members []string) []Edge {
	in := make(map[string]bool, len(members))
	for _, m := range members {
		in[m] = true
	}

	var edges []Edge
	for _, dep := range members {
		var related []string
		for _, src := range g.Parents(dep) {
			if (src == dep || in[src]) && !slices.Contains(related, src) {
				related = append(related, src)
			}
		}
		for _, src := range related {
			edges = append(edges, Edge{From: src, To: dep})
		}
	}
	return edges
}
