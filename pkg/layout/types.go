package layout

import (
	"github.com/strataviz/harris/pkg/layout/route"
	"github.com/strataviz/harris/pkg/strata"
)

// Node is a positioned unit: the input unit augmented with its canvas
// coordinates and depth tier. X and Y locate the node center; rank 0 is the
// shallowest (youngest) tier.
type Node struct {
	ID          string          `json:"id" bson:"id"`
	Type        strata.UnitType `json:"type" bson:"type"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	X           float64         `json:"x" bson:"x"`
	Y           float64         `json:"y" bson:"y"`
	Rank        int             `json:"rank" bson:"rank"`
}

// Link is a resolved edge between two positioned nodes. Implicit edges
// (opening layers, layer sequence) surface as OVERLAYS links with
// deterministic generated IDs so recomputation is stable.
type Link struct {
	ID       string              `json:"id" bson:"id"`
	SourceID string              `json:"source_id" bson:"source_id"`
	TargetID string              `json:"target_id" bson:"target_id"`
	Type     strata.RelationType `json:"type" bson:"type"`
}

// Layout is the complete output of one layout computation: positioned
// nodes, resolved links, and route geometry aligned by index with the
// links. It is the serialization boundary toward renderers.
type Layout struct {
	Width     float64       `json:"width" bson:"width"`
	Height    float64       `json:"height" bson:"height"`
	RankCount int           `json:"rank_count" bson:"rank_count"`
	Nodes     []Node        `json:"nodes" bson:"nodes"`
	Links     []Link        `json:"links,omitempty" bson:"links,omitempty"`
	Routes    []route.Route `json:"routes,omitempty" bson:"routes,omitempty"`
}

// Node returns the positioned node with the given unit ID and true, or a
// zero Node and false.
func (l *Layout) Node(id string) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Overrides carries the caller's manual adjustments into a layout call.
// All maps are optional, read-only inputs keyed by unit or link ID; a
// missing entry means "use the computed value".
type Overrides struct {
	// Positions pins a node to fixed canvas coordinates.
	Positions map[string]route.Point `json:"positions,omitempty" bson:"positions,omitempty" toml:"positions"`

	// Ports pins the exit/entry sides of a link.
	Ports map[string]route.PortOverride `json:"ports,omitempty" bson:"ports,omitempty" toml:"ports"`

	// Controls pins the shared-segment position of a link's route.
	Controls map[string]float64 `json:"controls,omitempty" bson:"controls,omitempty" toml:"controls"`
}
