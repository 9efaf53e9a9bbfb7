package strata

import (
	"errors"
	"slices"
)

var (
	// ErrUnknownUnit is returned by [Graph.AddEdge] when an endpoint does not
	// name a unit in the graph.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Graph is the directed adjacency structure the layout pipeline operates on.
// An edge parent→child means the parent is temporally later (drawn shallower)
// than the child. Edges are stored as sets, so inserting the same edge twice
// is a no-op and insertion order never leaks into results: all accessors
// return IDs in sorted order.
//
// The zero value is not usable - use NewGraph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	units    map[string]Unit
	children map[string]map[string]struct{}
	parents  map[string]map[string]struct{}
	edges    int
}

// NewGraph creates a graph over the given unit set with no edges.
// Duplicate unit IDs are a caller contract violation; the last one wins.
func NewGraph(units []Unit) *Graph {
	g := &Graph{
		units:    make(map[string]Unit, len(units)),
		children: make(map[string]map[string]struct{}, len(units)),
		parents:  make(map[string]map[string]struct{}, len(units)),
	}
	for _, u := range units {
		g.units[u.ID] = u
	}
	return g
}

// Unit returns the unit with the given ID and true, or a zero Unit and false.
func (g *Graph) Unit(id string) (Unit, bool) {
	u, ok := g.units[id]
	return u, ok
}

// Has reports whether a unit with the given ID exists in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.units[id]
	return ok
}

// AddEdge inserts the directed edge from→to. Inserting an existing edge is a
// no-op. Returns ErrUnknownUnit if either endpoint is not in the unit set.
func (g *Graph) AddEdge(from, to string) error {
	if !g.Has(from) || !g.Has(to) {
		return ErrUnknownUnit
	}
	if _, ok := g.children[from][to]; ok {
		return nil
	}
	if g.children[from] == nil {
		g.children[from] = make(map[string]struct{})
	}
	if g.parents[to] == nil {
		g.parents[to] = make(map[string]struct{})
	}
	g.children[from][to] = struct{}{}
	g.parents[to][from] = struct{}{}
	g.edges++
	return nil
}

// RemoveEdge deletes the edge from→to if it exists.
func (g *Graph) RemoveEdge(from, to string) {
	if _, ok := g.children[from][to]; !ok {
		return
	}
	delete(g.children[from], to)
	delete(g.parents[to], from)
	g.edges--
}

// HasEdge reports whether the edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.children[from][to]
	return ok
}

// Children returns the target IDs of all edges leaving the node, sorted.
func (g *Graph) Children(id string) []string {
	return sortedKeys(g.children[id])
}

// Parents returns the source IDs of all edges entering the node, sorted.
func (g *Graph) Parents(id string) []string {
	return sortedKeys(g.parents[id])
}

// UnitIDs returns every unit ID in the graph, sorted.
func (g *Graph) UnitIDs() []string {
	return sortedKeys(g.units)
}

// Units returns every unit, sorted by ID.
func (g *Graph) Units() []Unit {
	ids := g.UnitIDs()
	units := make([]Unit, len(ids))
	for i, id := range ids {
		units[i] = g.units[id]
	}
	return units
}

// Layers returns all LAYER-type units ordered by their layer key, the
// ascending (number, suffix) order that defines the stratigraphic backbone.
func (g *Graph) Layers() []Unit {
	var layers []Unit
	for _, u := range g.units {
		if u.Type.IsLayer() {
			layers = append(layers, u)
		}
	}
	slices.SortFunc(layers, func(a, b Unit) int {
		return CompareLayerIDs(a.ID, b.ID)
	})
	return layers
}

// Roots returns the IDs of all units with no incoming edges, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for id := range g.units {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)
	return roots
}

// UnitCount returns the number of units in the graph.
func (g *Graph) UnitCount() int { return len(g.units) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Edges returns every edge as a [from, to] pair, sorted by (from, to).
func (g *Graph) Edges() [][2]string {
	out := make([][2]string, 0, g.edges)
	for _, from := range sortedKeys(g.children) {
		for _, to := range sortedKeys(g.children[from]) {
			out = append(out, [2]string{from, to})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
