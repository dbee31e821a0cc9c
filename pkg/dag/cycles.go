package dag

// BackEdges returns the edges that close a cycle when the graph is walked
// depth-first in node insertion order. Self-loops are reported as back edges.
// An acyclic graph returns nil.
//
// The graph is not modified; callers use the result to report cycles in
// registry data, which the query algorithms otherwise tolerate silently.
func BackEdges(g *Graph) []Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var back []Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				back = append(back, Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
		}
	}
	return back
}
