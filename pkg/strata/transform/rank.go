package transform

import "github.com/strataviz/harris/pkg/strata"

// AssignRanks computes the depth tier of every unit: the longest weighted
// path from any root (a unit with no incoming edges) down to the unit.
// Roots get rank 0; every other unit gets the maximum over its parents p of
// rank(p) + weight(p, unit). Ranks are therefore as small as the retained
// edges allow while keeping every child strictly below all of its parents.
//
// # Edge Weights
//
// The default edge weight is 1. An edge between two LAYER units whose parent
// layer also has at least one non-LAYER child weighs 2 instead: the extra
// tier opens a visual band between the two layers where the pits and tombs
// dug into the upper layer live on their own row.
//
// # Cyclic Input
//
// Ranking walks parents with an explicit stack and an in-progress set, so it
// never recurses unboundedly and always terminates. A parent reached again
// while its own rank is still being computed (a cycle) contributes rank 0 to
// the max, which breaks the cycle deterministically but arbitrarily. This is
// a robustness heuristic for messy field data, not a topological rank for
// cyclic graphs.
func AssignRanks(g *strata.Graph) map[string]int {
	ranks := make(map[string]int, g.UnitCount())
	active := make(map[string]struct{})

	for _, id := range g.UnitIDs() {
		if _, done := ranks[id]; done {
			continue
		}
		stack := []*rankFrame{{id: id, parents: g.Parents(id)}}
		active[id] = struct{}{}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			descended := false

			for f.next < len(f.parents) {
				p := f.parents[f.next]
				if r, done := ranks[p]; done {
					if c := r + edgeWeight(g, p, f.id); c > f.best {
						f.best = c
					}
					f.next++
					continue
				}
				if _, inProgress := active[p]; inProgress {
					// Reached via its own ancestor chain: this branch
					// contributes rank 0 instead of recursing further.
					f.next++
					continue
				}
				stack = append(stack, &rankFrame{id: p, parents: g.Parents(p)})
				active[p] = struct{}{}
				descended = true
				break
			}

			if descended {
				continue
			}
			ranks[f.id] = f.best
			delete(active, f.id)
			stack = stack[:len(stack)-1]
		}
	}
	return ranks
}

// RankCount returns the number of distinct tiers implied by a rank map:
// the maximum rank plus one, or zero for an empty map.
func RankCount(ranks map[string]int) int {
	max := -1
	for _, r := range ranks {
		if r > max {
			max = r
		}
	}
	return max + 1
}

type rankFrame struct {
	id      string
	parents []string
	next    int
	best    int
}

// edgeWeight returns the rank distance the edge parent→child enforces.
func edgeWeight(g *strata.Graph, parent, child string) int {
	p, okP := g.Unit(parent)
	c, okC := g.Unit(child)
	if !okP || !okC || !p.Type.IsLayer() || !c.Type.IsLayer() {
		return 1
	}
	for _, kid := range g.Children(parent) {
		if u, ok := g.Unit(kid); ok && !u.Type.IsLayer() {
			return 2
		}
	}
	return 1
}
