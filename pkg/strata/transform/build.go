package transform

import "github.com/strataviz/harris/pkg/strata"

// Build constructs the "older-than" adjacency graph from raw stratigraphic
// data. It unions three independent edge sources:
//
//  1. Explicit superposition edges from the relation list ([AddExplicitEdges])
//  2. Implicit opening-layer edges ([AddOpeningLayerEdges])
//  3. Implicit layer-sequence edges ([AddLayerChainEdges])
//
// Each stage silently drops references to units that are not in the unit
// set; incomplete field data degrades to a smaller graph, never an error.
// Building is idempotent: the same units and relations always produce the
// same edge set regardless of input order.
func Build(units []strata.Unit, relations []strata.Relation) *strata.Graph {
	g := strata.NewGraph(units)
	AddExplicitEdges(g, relations)
	AddOpeningLayerEdges(g)
	AddLayerChainEdges(g)
	return g
}

// AddExplicitEdges inserts one edge source→target per superposition
// relation whose endpoints both exist in the graph. Multiple relations
// between the same pair collapse to a single edge.
//
// CUTS relations are deliberately excluded: a pit cutting a neighboring pit
// stays in the same depth tier and the cut is drawn as a lateral link
// between them, not as a parent/child step. Feeding cuts into the adjacency
// would push the cut unit a tier deeper and break the side-by-side grouping
// of intercutting features.
func AddExplicitEdges(g *strata.Graph, relations []strata.Relation) {
	for _, r := range relations {
		if r.Type == strata.RelCuts {
			continue
		}
		// AddEdge rejects unknown endpoints; that is the desired drop.
		_ = g.AddEdge(r.SourceID, r.TargetID)
	}
}

// AddOpeningLayerEdges inserts an edge layer→unit for every unit whose
// OpeningLayerID names a layer present in the graph. The opening layer
// predates the unit dug into it, so the layer sits above the unit in the
// matrix.
func AddOpeningLayerEdges(g *strata.Graph) {
	for _, u := range g.Units() {
		if u.OpeningLayerID == "" || u.OpeningLayerID == u.ID {
			continue
		}
		_ = g.AddEdge(u.OpeningLayerID, u.ID)
	}
}

// AddLayerChainEdges chains all LAYER units into a single descending
// backbone: each layer gets an edge to the next deeper layer in the
// (number, suffix) order of their IDs. This guarantees a consistent
// vertical spine even when no explicit relations exist between layers.
func AddLayerChainEdges(g *strata.Graph) {
	layers := g.Layers()
	for i := 0; i+1 < len(layers); i++ {
		_ = g.AddEdge(layers[i].ID, layers[i+1].ID)
	}
}
