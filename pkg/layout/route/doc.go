// Package route plans orthogonal edge paths between positioned nodes.
//
// # Overview
//
// Every link leaves its source node through a port on one of the four node
// sides, runs a short perpendicular stub, and then turns in axis-aligned
// segments toward the matching stub on the target node. The pair of stub
// orientations classifies the route:
//
//   - vertical-stack: both stubs vertical, one shared horizontal segment
//   - side-bracket: both stubs horizontal, one shared vertical segment
//   - mixed: one of each, a single L- or Z-shaped turn
//
// The shared segment's position is the route's control point, adjustable by
// the caller for interactive fine-tuning.
//
// # Bridges
//
// Where a horizontal segment of one link would cross a vertical segment of
// another, the emitted SVG path jumps the crossing with a small arc instead
// of drawing through it. Jumps on the same segment are walked in travel
// direction and merged when their arcs would overlap. A link never bridges
// against its own segments.
package route
