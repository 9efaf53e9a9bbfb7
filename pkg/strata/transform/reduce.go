package transform

import "github.com/strataviz/harris/pkg/strata"

// Reduce removes redundant edges from the graph and returns how many edges
// it dropped.
//
// An edge (i, j) is redundant when another child k of i can still reach j
// through the adjacency, because the temporal relation i→j is then already
// implied by the longer path i→k→...→j. Only the minimal relation set is
// worth drawing: transitive edges clutter the matrix without adding
// chronological information.
//
// # Algorithm
//
// For each node i (in sorted ID order), and each direct child j of i, Reduce
// probes whether any other child k of i reaches j via depth-first search
// over the adjacency as reduced so far. If so, the edge (i, j) is removed
// before the next probe runs.
//
// # Cyclic Input
//
// The reachability probe carries a visited set, so cycles in the input
// cannot loop it forever. On graphs that do contain cycles the result is a
// best-effort simplification, not a minimum edge cover: a redundancy probe
// may travel around a cycle and justify removing an edge a strict transitive
// reduction would keep. Stratigraphic data is expected to be near-acyclic,
// so this trade is acceptable.
func Reduce(g *strata.Graph) int {
	removed := 0
	for _, id := range g.UnitIDs() {
		for _, child := range g.Children(id) {
			if reachableFromSibling(g, id, child) {
				g.RemoveEdge(id, child)
				removed++
			}
		}
	}
	return removed
}

// reachableFromSibling reports whether any child of parent other than target
// can reach target through the current adjacency.
func reachableFromSibling(g *strata.Graph, parent, target string) bool {
	for _, sibling := range g.Children(parent) {
		if sibling == target {
			continue
		}
		if reaches(g, sibling, target) {
			return true
		}
	}
	return false
}

// reaches reports whether target is reachable from start by following edges.
func reaches(g *strata.Graph, start, target string) bool {
	if start == target {
		return true
	}
	visited := map[string]struct{}{start: {}}
	stack := []string{start}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.Children(curr) {
			if next == target {
				return true
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return false
}
