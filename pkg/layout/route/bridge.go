package route

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// segment is one axis-aligned piece of a routed polyline.
type segment struct {
	route      int // index into the routes slice
	index      int // index of the segment's start point within the route
	a, b       Point
	horizontal bool
}

// detectBridges finds every point where a horizontal segment of one link
// crosses a vertical segment of a different link perpendicularly. The result
// is aligned by route index; each entry maps a segment's start-point index
// to the x positions where that segment must jump.
//
// Crossings within the margin of a segment end are ignored: a path turning
// right next to another line is a corner, not a crossing. A link never
// bridges against its own segments.
func detectBridges(routes []Route, cfg Config) []map[int][]float64 {
	var horizontals, verticals []segment
	for ri, r := range routes {
		for i := 0; i+1 < len(r.Points); i++ {
			a, b := r.Points[i], r.Points[i+1]
			s := segment{route: ri, index: i, a: a, b: b}
			switch {
			case abs(a.Y-b.Y) < eps && abs(a.X-b.X) >= eps:
				s.horizontal = true
				horizontals = append(horizontals, s)
			case abs(a.X-b.X) < eps && abs(a.Y-b.Y) >= eps:
				verticals = append(verticals, s)
			}
		}
	}

	jumps := make([]map[int][]float64, len(routes))
	m := cfg.CrossMargin
	for _, h := range horizontals {
		x1, x2 := math.Min(h.a.X, h.b.X), math.Max(h.a.X, h.b.X)
		y := h.a.Y
		for _, v := range verticals {
			if routes[h.route].LinkID == routes[v.route].LinkID {
				continue
			}
			vx := v.a.X
			y1, y2 := math.Min(v.a.Y, v.b.Y), math.Max(v.a.Y, v.b.Y)
			if vx <= x1+m || vx >= x2-m || y <= y1+m || y >= y2-m {
				continue
			}
			if jumps[h.route] == nil {
				jumps[h.route] = make(map[int][]float64)
			}
			jumps[h.route][h.index] = append(jumps[h.route][h.index], vx)
		}
	}
	return jumps
}

// emitPath renders a polyline as an SVG path description, replacing each
// crossing point on horizontal segments with a bridge arc of the given
// radius. Jumps are walked in travel direction and arcs whose intervals
// overlap are merged into one wider bridge, so near-adjacent crossings
// produce a single clean arc instead of overlapping ones.
func emitPath(points []Point, jumps map[int][]float64, radius float64) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M %.2f %.2f", points[0].X, points[0].Y)

	for i := 0; i+1 < len(points); i++ {
		from, to := points[i], points[i+1]
		xs := jumps[i]
		if len(xs) == 0 {
			fmt.Fprintf(&b, " L %.2f %.2f", to.X, to.Y)
			continue
		}
		emitBridgedSegment(&b, from, to, xs, radius)
	}
	return b.String()
}

// emitBridgedSegment draws one horizontal segment with jump arcs.
func emitBridgedSegment(b *strings.Builder, from, to Point, xs []float64, radius float64) {
	rightward := to.X > from.X
	sort.Float64s(xs)
	if !rightward {
		for l, r := 0, len(xs)-1; l < r; l, r = l+1, r-1 {
			xs[l], xs[r] = xs[r], xs[l]
		}
	}

	y := from.Y
	sweep := 1 // clockwise arcs bulge upward when travelling right
	if !rightward {
		sweep = 0
	}

	// Arcs are clamped to the segment so a crossing admitted near an end
	// never overshoots it and forces the path to double back.
	lo, hi := math.Min(from.X, to.X), math.Max(from.X, to.X)
	for _, iv := range mergeIntervals(xs, radius, rightward) {
		iv.start = math.Min(math.Max(iv.start, lo), hi)
		iv.end = math.Min(math.Max(iv.end, lo), hi)
		fmt.Fprintf(b, " L %.2f %.2f", iv.start, y)
		rx := abs(iv.end-iv.start) / 2
		fmt.Fprintf(b, " A %.2f %.2f 0 0 %d %.2f %.2f", rx, radius, sweep, iv.end, y)
	}
	fmt.Fprintf(b, " L %.2f %.2f", to.X, to.Y)
}

type interval struct {
	start, end float64 // in travel order
}

// mergeIntervals turns jump positions into arc intervals of ±radius around
// each jump, merging intervals that overlap in travel order.
func mergeIntervals(xs []float64, radius float64, rightward bool) []interval {
	var out []interval
	for _, x := range xs {
		var iv interval
		if rightward {
			iv = interval{start: x - radius, end: x + radius}
		} else {
			iv = interval{start: x + radius, end: x - radius}
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			overlaps := (rightward && iv.start <= last.end) || (!rightward && iv.start >= last.end)
			if overlaps {
				last.end = iv.end
				continue
			}
		}
		out = append(out, iv)
	}
	return out
}
