package route

import (
	"math"

	"github.com/strataviz/harris/pkg/strata"
)

// chooseSides picks the default exit side on the source node and entry side
// on the target node.
//
// Horizontally aligned cut relations get matching left or right ports based
// on which half of the canvas the source sits in, so parallel cuts in the
// same tier read as a visual group. Otherwise a target strictly below the
// source connects bottom→top, endpoints far apart horizontally connect
// through facing side ports, and everything else falls back to bottom→top.
func chooseSides(l Link, cfg Config) (Side, Side) {
	dy := l.Target.Y - l.Source.Y
	dx := l.Target.X - l.Source.X

	if math.Abs(dy) <= cfg.AlignTolerance && l.Type == strata.RelCuts {
		if l.Source.X <= cfg.CanvasWidth/2 {
			return SideLeft, SideLeft
		}
		return SideRight, SideRight
	}
	if dy > cfg.AlignTolerance {
		return SideBottom, SideTop
	}
	if math.Abs(dx) > cfg.FarApart {
		if dx > 0 {
			return SideRight, SideLeft
		}
		return SideLeft, SideRight
	}
	return SideBottom, SideTop
}

// portPoint returns the point on the node boundary where a path attaches.
func portPoint(n Endpoint, s Side, cfg Config) Point {
	switch s {
	case SideTop:
		return Point{X: n.X, Y: n.Y - cfg.NodeHeight/2}
	case SideBottom:
		return Point{X: n.X, Y: n.Y + cfg.NodeHeight/2}
	case SideLeft:
		return Point{X: n.X - cfg.NodeWidth/2, Y: n.Y}
	default:
		return Point{X: n.X + cfg.NodeWidth/2, Y: n.Y}
	}
}

// stubEnd returns the end of the fixed-length perpendicular stub leaving a
// port before the path is allowed to turn.
func stubEnd(port Point, s Side, cfg Config) Point {
	switch s {
	case SideTop:
		return Point{X: port.X, Y: port.Y - cfg.StubLength}
	case SideBottom:
		return Point{X: port.X, Y: port.Y + cfg.StubLength}
	case SideLeft:
		return Point{X: port.X - cfg.StubLength, Y: port.Y}
	default:
		return Point{X: port.X + cfg.StubLength, Y: port.Y}
	}
}
