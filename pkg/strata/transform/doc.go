// Package transform turns raw stratigraphic data into a ranked adjacency
// graph ready for coordinate planning.
//
// # Overview
//
// The pipeline has three stages, applied in order:
//
//   - [Build] unions explicit relations, implicit opening-layer edges, and
//     the implicit layer-sequence chain into one directed graph
//   - [Reduce] drops edges already implied by longer paths, so only the
//     minimal temporal relations are drawn
//   - [AssignRanks] computes each unit's depth tier via weighted
//     longest-path from the roots
//
// Each stage is independently testable, and each is safe on cyclic input:
// reachability probes carry visited sets and ranking carries an in-progress
// set, so malformed field data produces a plausible diagram instead of a
// hang or a crash.
//
// # Usage
//
//	g := transform.Build(units, relations)
//	transform.Reduce(g)
//	ranks := transform.AssignRanks(g)
package transform
