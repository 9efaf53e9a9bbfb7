package layout

import (
	"slices"

	"github.com/strataviz/harris/pkg/layout/route"
	"github.com/strataviz/harris/pkg/strata"
)

// Side markers used while balancing a tier.
const (
	sideLeft   = -1
	sideCenter = 0
	sideRight  = 1
)

// PlaceNodes assigns canvas coordinates to every ranked unit.
//
// Y is purely rank-derived: baseOffset + rank * rankSpacing. X follows the
// tier rules, processed shallowest tier first:
//
//  1. LAYER units are centered on the canvas midline, fanned out evenly by
//     a fraction of the column spacing.
//  2. A feature that is the only non-LAYER child of a LAYER with no LAYER
//     children is centered too, keeping single-child chains straight.
//  3. Every other feature takes the side its parents sit on. Parents that
//     disagree, or that are all centered, fall through to whichever side of
//     the current tier holds fewer nodes, preferring left on an exact tie.
//     A feature with no parents defaults to the right side.
//  4. Within a side, features occupy fixed-width columns outward from the
//     midline gap, ordered by ID (mirrored on the left).
//
// Caller-pinned positions replace computed coordinates after all rules run,
// so overrides never influence the balancing of other nodes.
func PlaceNodes(g *strata.Graph, ranks map[string]int, cfg Config, positions map[string]route.Point) []Node {
	mid := cfg.Width / 2
	tiers := tiersByRank(g, ranks)
	sides := make(map[string]int, g.UnitCount())

	var nodes []Node
	for r, tier := range tiers {
		if len(tier) == 0 {
			continue
		}
		y := cfg.BaseOffset + float64(r)*cfg.RankSpacing

		var layers, features []strata.Unit
		for _, u := range tier {
			if u.Type.IsLayer() {
				layers = append(layers, u)
			} else {
				features = append(features, u)
			}
		}

		slices.SortFunc(layers, func(a, b strata.Unit) int {
			return strata.CompareLayerIDs(a.ID, b.ID)
		})
		spacing := cfg.ColumnSpacing * cfg.LayerSpacing
		for i, u := range layers {
			sides[u.ID] = sideCenter
			x := mid + (float64(i)-float64(len(layers)-1)/2)*spacing
			nodes = append(nodes, newNode(u, x, y, r))
		}

		assignSides(g, features, sides)

		leftIdx, rightIdx := 0, 0
		for _, u := range features {
			var x float64
			switch sides[u.ID] {
			case sideLeft:
				x = mid - cfg.MidlineGap - float64(leftIdx)*cfg.ColumnSpacing
				leftIdx++
			case sideRight:
				x = mid + cfg.MidlineGap + float64(rightIdx)*cfg.ColumnSpacing
				rightIdx++
			default:
				x = mid
			}
			nodes = append(nodes, newNode(u, x, y, r))
		}
	}

	for i := range nodes {
		if p, ok := positions[nodes[i].ID]; ok {
			nodes[i].X, nodes[i].Y = p.X, p.Y
		}
	}
	return nodes
}

// assignSides decides left/center/right for each feature in a tier,
// iterating in sorted ID order and keeping running per-side counts for the
// tie-break, so the result never depends on map iteration order.
func assignSides(g *strata.Graph, features []strata.Unit, sides map[string]int) {
	leftCount, rightCount := 0, 0
	for _, u := range features {
		if isCenteredChild(g, u) {
			sides[u.ID] = sideCenter
			continue
		}

		s, decided := inheritedSide(g, u.ID, sides)
		if !decided {
			switch {
			case len(g.Parents(u.ID)) == 0:
				s = sideRight
			case leftCount <= rightCount:
				s = sideLeft
			default:
				s = sideRight
			}
		}
		sides[u.ID] = s
		if s == sideLeft {
			leftCount++
		} else {
			rightCount++
		}
	}
}

// isCenteredChild implements the single-child centering rule: the unit's
// only parent is a LAYER whose children are exactly one non-LAYER unit and
// no LAYER units.
func isCenteredChild(g *strata.Graph, u strata.Unit) bool {
	parents := g.Parents(u.ID)
	if len(parents) != 1 {
		return false
	}
	p, ok := g.Unit(parents[0])
	if !ok || !p.Type.IsLayer() {
		return false
	}
	featureChildren := 0
	for _, kid := range g.Children(p.ID) {
		c, ok := g.Unit(kid)
		if !ok {
			continue
		}
		if c.Type.IsLayer() {
			return false
		}
		featureChildren++
	}
	return featureChildren == 1
}

// inheritedSide returns the side all of the unit's left/right parents agree
// on. The second result is false when the unit has no sided parents or its
// parents disagree.
func inheritedSide(g *strata.Graph, id string, sides map[string]int) (int, bool) {
	agreed := sideCenter
	for _, p := range g.Parents(id) {
		s, ok := sides[p]
		if !ok || s == sideCenter {
			continue
		}
		if agreed == sideCenter {
			agreed = s
			continue
		}
		if agreed != s {
			return sideCenter, false
		}
	}
	return agreed, agreed != sideCenter
}

// tiersByRank groups units by rank, each tier sorted by unit ID.
func tiersByRank(g *strata.Graph, ranks map[string]int) [][]strata.Unit {
	count := 0
	for _, r := range ranks {
		if r+1 > count {
			count = r + 1
		}
	}
	tiers := make([][]strata.Unit, count)
	for _, u := range g.Units() {
		r := ranks[u.ID]
		tiers[r] = append(tiers[r], u)
	}
	return tiers
}

func newNode(u strata.Unit, x, y float64, rank int) Node {
	return Node{
		ID:          u.ID,
		Type:        u.Type,
		Description: u.Description,
		X:           x,
		Y:           y,
		Rank:        rank,
	}
}
