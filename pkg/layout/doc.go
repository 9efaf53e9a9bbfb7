// Package layout assigns canvas coordinates to ranked stratigraphic units
// and produces the serializable layout consumed by renderers.
//
// # Overview
//
// A Harris Matrix reads top-down: rank 0 (the youngest units) sits at the
// top of the canvas and each deeper tier is one rank spacing further down.
// Within a tier, layers hold the midline while features balance out to the
// left and right, so cut/overlay chains stay readable as vertical runs.
//
// [Build] is the entry point: given a reduced graph, a rank map, a
// [Config], and optional [Overrides], it returns a [Layout] with positioned
// nodes, resolved links, and orthogonal route geometry from the [route]
// subpackage.
//
// # Manual Overrides
//
// Interactive callers keep drag state on their side and feed it back in as
// override maps: pinned node positions, pinned link ports, and pinned route
// control points. Overrides are plain override-if-present lookups; they
// never mutate and never influence the placement of other nodes.
//
// [route]: github.com/strataviz/harris/pkg/layout/route
package layout
