// Package pkg provides the core libraries for Harris matrix layout.
//
// # Overview
//
// Harris turns recorded stratigraphic relations into laid-out sequence
// diagrams. The pkg directory is organized into these areas:
//
//  1. [strata] - Domain types and the relation graph
//  2. [layout] - Coordinate planning and orthogonal routing
//  3. [pipeline] - Orchestration (build → reduce → rank → place → route)
//  4. [render] - SVG, Graphviz, and raster output
//  5. [cache], [store] - Content-addressed caching and matrix persistence
//
// # Architecture
//
// The typical data flow:
//
//	Excavation records (matrix.json)
//	         ↓
//	strata/transform: relation graph, reduction, depth tiers
//	         ↓
//	layout: node coordinates + routed relations
//	         ↓
//	render: SVG / PNG / PDF / DOT
//
// The pipeline package drives the whole chain and caches results by content
// hash. The CLI (internal/cli) and the HTTP API (internal/api) are thin
// wrappers over it.
//
// [strata]: github.com/strataviz/harris/pkg/strata
// [layout]: github.com/strataviz/harris/pkg/layout
// [pipeline]: github.com/strataviz/harris/pkg/pipeline
// [render]: github.com/strataviz/harris/pkg/render
// [cache]: github.com/strataviz/harris/pkg/cache
// [store]: github.com/strataviz/harris/pkg/store
package pkg
