package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/strata"
)

// fillColors maps unit types to their box fill. Types without an entry use
// the default fill.
var fillColors = map[strata.UnitType]string{
	strata.TypeLayer:  "#f5efe0",
	strata.TypeAshPit: "#e8d8c8",
	strata.TypeTomb:   "#d8dce8",
	strata.TypeHouse:  "#dce8d8",
	strata.TypeKiln:   "#e8d0d0",
	strata.TypeWell:   "#d0e0e8",
	strata.TypeWall:   "#e0e0e0",
}

const defaultFill = "#f0f0f0"

const diagramCSS = `
    .unit { stroke: #444; stroke-width: 1.5; }
    .unit-label { font-family: Georgia, serif; font-size: 14px; text-anchor: middle; fill: #222; }
    .unit-type { font-family: Georgia, serif; font-size: 9px; text-anchor: middle; fill: #777; }
    .relation { fill: none; stroke: #555; stroke-width: 1.2; }
    .tier-guide { stroke: #ccc; stroke-width: 0.5; stroke-dasharray: 4 4; }
    .tier-label { font-family: Georgia, serif; font-size: 10px; fill: #aaa; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	nodeWidth  float64
	nodeHeight float64
	title      string
	tierGuides bool
}

// WithNodeSize overrides the box dimensions. They must match the node size
// the layout was computed with, or routes will attach to the wrong edges.
func WithNodeSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.nodeWidth, r.nodeHeight = w, h }
}

// WithTitle adds a title line at the top of the diagram.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// WithTierGuides draws a dashed horizontal guide per depth tier.
func WithTierGuides() SVGOption {
	return func(r *svgRenderer) { r.tierGuides = true }
}

// RenderSVG draws a routed layout as an SVG document.
// Edges are drawn first so boxes cover their attachment stubs.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{
		nodeWidth:  layout.DefaultNodeWidth,
		nodeHeight: layout.DefaultNodeHeight,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", diagramCSS)
	buf.WriteString("  <rect width=\"100%\" height=\"100%\" fill=\"white\"/>\n")

	if r.tierGuides {
		renderTierGuides(&buf, l)
	}
	if r.title != "" {
		fmt.Fprintf(&buf, "  <text x=\"%.1f\" y=\"24\" class=\"unit-label\" font-size=\"18\">%s</text>\n",
			l.Width/2, html.EscapeString(r.title))
	}

	for _, rt := range l.Routes {
		if rt.PathD == "" {
			continue
		}
		fmt.Fprintf(&buf, "  <path class=\"relation\" d=%q/>\n", rt.PathD)
	}

	for _, n := range l.Nodes {
		renderUnit(&buf, n, r.nodeWidth, r.nodeHeight)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderUnit(buf *bytes.Buffer, n layout.Node, w, h float64) {
	fill, ok := fillColors[n.Type]
	if !ok {
		fill = defaultFill
	}

	x := n.X - w/2
	y := n.Y - h/2
	fmt.Fprintf(buf, "  <g id=\"unit-%s\">\n", html.EscapeString(n.ID))
	fmt.Fprintf(buf, "    <rect class=\"unit\" x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=%q/>\n",
		x, y, w, h, fill)
	if n.Type != "" && !n.Type.IsLayer() {
		fmt.Fprintf(buf, "    <text class=\"unit-label\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			n.X, n.Y, html.EscapeString(n.ID))
		fmt.Fprintf(buf, "    <text class=\"unit-type\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			n.X, n.Y+h/2-6, html.EscapeString(string(n.Type)))
	} else {
		fmt.Fprintf(buf, "    <text class=\"unit-label\" x=\"%.1f\" y=\"%.1f\" dy=\"4\">%s</text>\n",
			n.X, n.Y, html.EscapeString(n.ID))
	}
	buf.WriteString("  </g>\n")
}

func renderTierGuides(buf *bytes.Buffer, l layout.Layout) {
	seen := make(map[int]bool)
	for _, n := range l.Nodes {
		if seen[n.Rank] {
			continue
		}
		seen[n.Rank] = true
		fmt.Fprintf(buf, "  <line class=\"tier-guide\" x1=\"0\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n",
			n.Y, l.Width, n.Y)
		fmt.Fprintf(buf, "  <text class=\"tier-label\" x=\"6\" y=\"%.1f\">%d</text>\n", n.Y-4, n.Rank)
	}
}
