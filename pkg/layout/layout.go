package layout

import (
	"slices"
	"strings"

	"github.com/strataviz/harris/pkg/layout/route"
	"github.com/strataviz/harris/pkg/strata"
)

// Build computes the full layout for a reduced, ranked graph: node
// positions, resolved links, and routed edge geometry. The relations slice
// is used to recover the type and ID of explicit edges; edges without a
// matching relation are the implicit ones and surface as OVERLAYS links.
//
// Build is pure: it reads the graph, ranks, and overrides without mutating
// any of them, and identical inputs always produce an identical Layout.
func Build(g *strata.Graph, relations []strata.Relation, ranks map[string]int, cfg Config, ov Overrides) Layout {
	cfg = cfg.WithDefaults()

	nodes := PlaceNodes(g, ranks, cfg, ov.Positions)
	nodeByID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	links := resolveLinks(g, relations)
	routeLinks := make([]route.Link, len(links))
	for i, l := range links {
		src, dst := nodeByID[l.SourceID], nodeByID[l.TargetID]
		routeLinks[i] = route.Link{
			ID:     l.ID,
			Source: route.Endpoint{ID: src.ID, X: src.X, Y: src.Y},
			Target: route.Endpoint{ID: dst.ID, X: dst.X, Y: dst.Y},
			Type:   l.Type,
		}
	}
	routes := route.PlanAll(routeLinks, cfg.routeConfig(), ov.Ports, ov.Controls)

	rankCount := 0
	for _, r := range ranks {
		if r+1 > rankCount {
			rankCount = r + 1
		}
	}

	return Layout{
		Width:     cfg.Width,
		Height:    cfg.Height,
		RankCount: rankCount,
		Nodes:     nodes,
		Links:     links,
		Routes:    routes,
	}
}

// resolveLinks turns the reduced edge set into links, attaching the type
// and ID of the explicit relation where one exists. When several relations
// assert the same edge, the first in (source, target, ID) order wins.
// Implicit edges become OVERLAYS links with a generated "from->to" ID so the
// output is stable across recomputations.
//
// CUTS relations never enter the adjacency, so they are appended as lateral
// links after the edge-derived ones, deduplicated against edges and each
// other.
func resolveLinks(g *strata.Graph, relations []strata.Relation) []Link {
	sorted := slices.Clone(relations)
	slices.SortFunc(sorted, func(a, b strata.Relation) int {
		if c := strings.Compare(a.SourceID, b.SourceID); c != 0 {
			return c
		}
		if c := strings.Compare(a.TargetID, b.TargetID); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	byEdge := make(map[[2]string]strata.Relation, len(sorted))
	for _, r := range sorted {
		key := [2]string{r.SourceID, r.TargetID}
		if _, ok := byEdge[key]; !ok {
			byEdge[key] = r
		}
	}

	edges := g.Edges()
	seen := make(map[[2]string]bool, len(edges))
	links := make([]Link, 0, len(edges))
	for _, e := range edges {
		from, to := e[0], e[1]
		seen[[2]string{from, to}] = true
		l := Link{SourceID: from, TargetID: to, Type: strata.RelOverlays}
		if r, ok := byEdge[[2]string{from, to}]; ok {
			l.Type = r.Type
			l.ID = r.ID
		}
		if l.ID == "" {
			l.ID = from + "->" + to
		}
		links = append(links, l)
	}

	for _, r := range sorted {
		if r.Type != strata.RelCuts || !g.Has(r.SourceID) || !g.Has(r.TargetID) {
			continue
		}
		key := [2]string{r.SourceID, r.TargetID}
		if seen[key] {
			continue
		}
		seen[key] = true
		l := Link{ID: r.ID, SourceID: r.SourceID, TargetID: r.TargetID, Type: r.Type}
		if l.ID == "" {
			l.ID = r.SourceID + "->" + r.TargetID
		}
		links = append(links, l)
	}
	return links
}
