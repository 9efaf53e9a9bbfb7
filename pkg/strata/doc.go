// Package strata provides the stratigraphic data model and directed graph
// structure that power Harris Matrix layouts.
//
// # Overview
//
// A Harris Matrix diagram places excavation units (layers, ash pits, tombs,
// house foundations, kilns, wells, walls) in a grid where vertical position
// encodes relative chronology: younger units sit above the older units they
// cut into, overlay, or were dug through. This package provides the [Unit]
// and [Relation] input types and the [Graph] adjacency structure that the
// layout pipeline operates on.
//
// # Edge Orientation
//
// Every edge parent→child in a [Graph] means "parent is temporally later
// than child" and is drawn with the parent in a shallower tier. Explicit
// relations always orient source (younger) → target (older); implicit edges
// derived from opening layers and layer sequence follow the same rule.
//
// # Determinism
//
// The layout engine must produce identical output for identical input, so
// [Graph] stores edges as sets (duplicates collapse) and every accessor
// returns IDs in sorted order. Downstream tie-breaking is always done on
// those sorted views, never on map iteration order.
//
// # Layer Ordering
//
// Layer IDs follow the excavation convention "<number><letter suffix>"
// ("1", "2", "2a", "3"). [CompareLayerIDs] orders them ascending by
// (number, suffix), which defines the implicit total order used to chain
// layers into a single descending backbone even when no explicit relations
// exist between them.
//
// # Related Packages
//
// The [transform] subpackage builds a Graph from raw units and relations,
// removes redundant edges, and assigns depth ranks.
//
// [transform]: github.com/strataviz/harris/pkg/strata/transform
package strata
