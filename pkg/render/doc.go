// Package render turns computed layouts into visual outputs.
//
// # Overview
//
// Two renderers are provided:
//
//   - [RenderSVG] draws a routed [layout.Layout] directly: one box per unit,
//     one orthogonal path per relation, crossing bridges included. This is
//     the faithful rendering of the engine's own geometry.
//   - [ToDOT] and [RenderDOT] hand the reduced graph to Graphviz for a
//     conventional node-link drawing. Useful for sanity-checking the
//     engine's ranking against an independent layout.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). They work on the output of
// either renderer.
//
//	svg := render.RenderSVG(l)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [layout.Layout]: github.com/strataviz/harris/pkg/layout
package render
