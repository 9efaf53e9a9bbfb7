package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/strataviz/harris/pkg/strata"
)

// DOTOptions configures DOT conversion.
type DOTOptions struct {
	// Detailed includes the unit type and description in node labels.
	// When false, only the unit ID is shown.
	Detailed bool

	// Ranks pins same-tier units to the same Graphviz rank so the
	// Graphviz drawing agrees with the engine's depth assignment.
	// When nil, Graphviz ranks freely.
	Ranks map[string]int
}

// ToDOT converts a reduced graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderDOT].
//
// Layers are rendered as plain boxes; cut features get rounded corners to
// distinguish intrusions from deposits.
func ToDOT(g *strata.Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph harris {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, u := range g.Units() {
		label := fmtLabel(u, opts.Detailed)
		attrs := fmtAttrs(u, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", u.ID, strings.Join(attrs, ", "))
	}

	if opts.Ranks != nil {
		buf.WriteString("\n")
		writeRankGroups(&buf, opts.Ranks)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(u strata.Unit, detailed bool) string {
	if !detailed {
		return u.ID
	}

	parts := []string{u.ID}
	if u.Type != "" {
		parts = append(parts, string(u.Type))
	}
	if u.Description != "" {
		parts = append(parts, u.Description)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(u strata.Unit, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !u.Type.IsLayer() {
		attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=\"#eeeeee\"")
	}
	return attrs
}

func writeRankGroups(buf *bytes.Buffer, ranks map[string]int) {
	byRank := make(map[int][]string)
	maxRank := 0
	for id, r := range ranks {
		byRank[r] = append(byRank[r], id)
		if r > maxRank {
			maxRank = r
		}
	}
	for r := 0; r <= maxRank; r++ {
		ids := byRank[r]
		if len(ids) == 0 {
			continue
		}
		sort.Strings(ids)
		buf.WriteString("  { rank=same;")
		for _, id := range ids {
			fmt.Fprintf(buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}
}

// RenderDOT renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [ToPDF] or [ToPNG].
func RenderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
