package dag

import "slices"

// TopoSort orders the nodes mentioned in edges so that every From precedes
// its To. Nodes that become ready at the same time are emitted in
// lexicographic order, which makes the result independent of edge order.
//
// Self-loops and duplicate edges are ignored. When the edges contain a
// cycle, the smallest node on a cycle that nothing outside the cycle still
// waits on is released to break it. Edges that lie on no cycle keep their
// order, and TopoSort always returns every node exactly once and never fails.
func TopoSort(edges []Edge) []string {
	var nodes []string
	indegree := make(map[string]int)
	succ := make(map[string][]string)
	pred := make(map[string][]string)
	seen := make(map[Edge]bool, len(edges))

	add := func(id string) {
		if _, ok := indegree[id]; !ok {
			indegree[id] = 0
			nodes = append(nodes, id)
		}
	}
	for _, e := range edges {
		add(e.From)
		add(e.To)
		if e.From == e.To || seen[e] {
			continue
		}
		seen[e] = true
		succ[e.From] = append(succ[e.From], e.To)
		pred[e.To] = append(pred[e.To], e.From)
		indegree[e.To]++
	}

	var ready []string
	for _, id := range nodes {
		if indegree[id] == 0 {
			ready = insertSorted(ready, id)
		}
	}

	done := make(map[string]bool, len(nodes))
	order := make([]string, 0, len(nodes))
	for len(order) < len(nodes) {
		if len(ready) == 0 {
			ready = []string{releaseCycle(nodes, succ, pred, done)}
		}
		id := ready[0]
		ready = ready[1:]
		if done[id] {
			continue
		}
		done[id] = true
		order = append(order, id)

		for _, next := range succ[id] {
			if done[next] {
				continue
			}
			indegree[next]--
			if indegree[next] == 0 {
				ready = insertSorted(ready, next)
			}
		}
	}
	return order
}

func insertSorted(s []string, id string) []string {
	i, found := slices.BinarySearch(s, id)
	if found {
		return s
	}
	return slices.Insert(s, i, id)
}

// releaseCycle picks the node to emit when no node is ready. Candidates
// are members of a cycle whose members wait on nothing outside the cycle,
// so no node is released ahead of a predecessor it does not loop back to.
// The smallest candidate wins.
func releaseCycle(nodes []string, succ, pred map[string][]string, done map[string]bool) string {
	var pending []string
	for _, id := range nodes {
		if !done[id] {
			pending = append(pending, id)
		}
	}
	slices.Sort(pending)

	for _, id := range pending {
		reach := reachable(id, succ, done)
		if !reach[id] {
			continue
		}
		cycle := map[string]bool{id: true}
		for m := range reach {
			if reachable(m, succ, done)[id] {
				cycle[m] = true
			}
		}
		if !waitsOutside(cycle, pred, done) {
			return id
		}
	}
	return pending[0]
}

func waitsOutside(cycle map[string]bool, pred map[string][]string, done map[string]bool) bool {
	for m := range cycle {
		for _, p := range pred[m] {
			if !done[p] && !cycle[p] {
				return true
			}
		}
	}
	return false
}

// reachable returns the pending nodes reachable from id.
func reachable(id string, succ map[string][]string, done map[string]bool) map[string]bool {
	seen := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range succ[cur] {
			if done[next] || seen[next] {
				continue
			}
			seen[next] = true
			stack = append(stack, next)
		}
	}
	return seen
}
