package route

import "github.com/strataviz/harris/pkg/strata"

// Side identifies the node boundary a link enters or exits through.
type Side string

// Node sides. Ports sit at the middle of the chosen side.
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// IsVertical reports whether a port on this side produces a vertical stub.
func (s Side) IsVertical() bool { return s == SideTop || s == SideBottom }

// Kind classifies a routed path by the pair of stubs it connects.
type Kind string

// Route kinds. The kind determines how the single adjustable control point
// behaves: vertical-stack routes share one horizontal segment whose height
// is the control value, side-bracket routes share one vertical segment whose
// x position is the control value, mixed routes have a fixed corner.
const (
	KindVerticalStack Kind = "vertical-stack"
	KindSideBracket   Kind = "side-bracket"
	KindMixed         Kind = "mixed"
)

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x" bson:"x" toml:"x"`
	Y float64 `json:"y" bson:"y" toml:"y"`
}

// Endpoint is the positioned node a link attaches to, identified by unit ID
// with its center coordinates.
type Endpoint struct {
	ID string
	X  float64
	Y  float64
}

// Link is a routing request: a resolved edge between two positioned nodes.
type Link struct {
	ID     string
	Source Endpoint
	Target Endpoint
	Type   strata.RelationType
}

// PortOverride pins the exit and/or entry side of a single link. An empty
// Side keeps the heuristic choice for that end.
type PortOverride struct {
	Source Side `json:"source,omitempty" bson:"source,omitempty" toml:"source"`
	Target Side `json:"target,omitempty" bson:"target,omitempty" toml:"target"`
}

// Route is the computed geometry for one link: the orthogonal polyline, its
// classification, the control value actually used for the shared segment,
// and an SVG path description with bridge arcs at perpendicular crossings.
type Route struct {
	LinkID  string  `json:"link_id" bson:"link_id"`
	Kind    Kind    `json:"route_type" bson:"route_type"`
	Points  []Point `json:"points" bson:"points"`
	PathD   string  `json:"path" bson:"path"`
	Control float64 `json:"control_point" bson:"control_point"`
}

// Config holds the routing geometry parameters.
type Config struct {
	CanvasWidth    float64 // used to group aligned cut relations by canvas half
	NodeWidth      float64 // drawn node box width, ports sit on its boundary
	NodeHeight     float64 // drawn node box height
	StubLength     float64 // straight run leaving a port before the first turn
	BridgeRadius   float64 // arc radius for crossing bridges
	CrossMargin    float64 // crossings this close to a segment end are ignored
	AlignTolerance float64 // max Y distance treated as "horizontally aligned"
	FarApart       float64 // min X distance that switches to side ports
}

// PlanAll routes every link and resolves crossings between the resulting
// polylines with bridge arcs. Routes are returned aligned by index with the
// input links. The ports and controls maps are optional caller overrides
// keyed by link ID; both are read-only and may be nil.
func PlanAll(links []Link, cfg Config, ports map[string]PortOverride, controls map[string]float64) []Route {
	routes := make([]Route, len(links))
	for i, l := range links {
		srcSide, dstSide := chooseSides(l, cfg)
		if ov, ok := ports[l.ID]; ok {
			if ov.Source != "" {
				srcSide = ov.Source
			}
			if ov.Target != "" {
				dstSide = ov.Target
			}
		}
		control, hasControl := controls[l.ID]
		routes[i] = buildRoute(l, srcSide, dstSide, control, hasControl, cfg)
	}

	jumps := detectBridges(routes, cfg)
	for i := range routes {
		routes[i].PathD = emitPath(routes[i].Points, jumps[i], cfg.BridgeRadius)
	}
	return routes
}
