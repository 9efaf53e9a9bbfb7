package route

const eps = 1e-9

// buildRoute constructs the orthogonal polyline for one link given its
// resolved port sides. The control value positions the shared segment of
// vertical-stack and side-bracket routes; when the caller supplied none, it
// defaults to the midpoint of the two stub endpoints.
func buildRoute(l Link, srcSide, dstSide Side, control float64, hasControl bool, cfg Config) Route {
	srcPort := portPoint(l.Source, srcSide, cfg)
	dstPort := portPoint(l.Target, dstSide, cfg)
	srcStub := stubEnd(srcPort, srcSide, cfg)
	dstStub := stubEnd(dstPort, dstSide, cfg)

	var kind Kind
	var points []Point

	switch {
	case srcSide.IsVertical() && dstSide.IsVertical():
		kind = KindVerticalStack
		if !hasControl {
			control = (srcStub.Y + dstStub.Y) / 2
		}
		points = []Point{
			srcPort, srcStub,
			{X: srcStub.X, Y: control},
			{X: dstStub.X, Y: control},
			dstStub, dstPort,
		}
	case !srcSide.IsVertical() && !dstSide.IsVertical():
		kind = KindSideBracket
		if !hasControl {
			control = (srcStub.X + dstStub.X) / 2
		}
		points = []Point{
			srcPort, srcStub,
			{X: control, Y: srcStub.Y},
			{X: control, Y: dstStub.Y},
			dstStub, dstPort,
		}
	case srcSide.IsVertical():
		// Vertical stub out, horizontal stub in: one corner below the source.
		kind = KindMixed
		points = []Point{
			srcPort, srcStub,
			{X: srcStub.X, Y: dstStub.Y},
			dstStub, dstPort,
		}
	default:
		kind = KindMixed
		points = []Point{
			srcPort, srcStub,
			{X: dstStub.X, Y: srcStub.Y},
			dstStub, dstPort,
		}
	}

	return Route{
		LinkID:  l.ID,
		Kind:    kind,
		Points:  collapsePoints(points),
		Control: control,
	}
}

// collapsePoints removes zero-length segments by dropping consecutive
// duplicate points.
func collapsePoints(pts []Point) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		last := out[len(out)-1]
		if samePoint(p, last) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func samePoint(a, b Point) bool {
	return abs(a.X-b.X) < eps && abs(a.Y-b.Y) < eps
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
