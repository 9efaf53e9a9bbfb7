package render

import (
	"strings"
	"testing"

	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/layout/route"
	"github.com/strataviz/harris/pkg/strata"
)

func testLayout() layout.Layout {
	return layout.Layout{
		Width:     1200,
		Height:    900,
		RankCount: 2,
		Nodes: []layout.Node{
			{ID: "1", Type: strata.TypeLayer, X: 600, Y: 80, Rank: 0},
			{ID: "H1", Type: strata.TypeAshPit, X: 430, Y: 220, Rank: 1},
		},
		Links: []layout.Link{
			{ID: "1->H1", SourceID: "1", TargetID: "H1", Type: strata.RelOverlays},
		},
		Routes: []route.Route{
			{LinkID: "1->H1", Kind: route.KindVerticalStack, PathD: "M 600.00 103.00 L 430.00 197.00"},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1200.0 900.0"`) {
		t.Errorf("unexpected document open: %s", svg[:80])
	}
	if !strings.Contains(svg, `<g id="unit-1">`) || !strings.Contains(svg, `<g id="unit-H1">`) {
		t.Error("missing unit groups")
	}
	if !strings.Contains(svg, `d="M 600.00 103.00 L 430.00 197.00"`) {
		t.Error("missing relation path")
	}
	if !strings.Contains(svg, `fill="#f5efe0"`) {
		t.Error("layer fill color not applied")
	}
	if !strings.Contains(svg, `fill="#e8d8c8"`) {
		t.Error("ash pit fill color not applied")
	}
	if !strings.Contains(svg, ">ASH_PIT<") {
		t.Error("feature type sub-label missing")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRenderSVG_EdgesDrawnBeforeNodes(t *testing.T) {
	svg := string(RenderSVG(testLayout()))
	path := strings.Index(svg, `class="relation"`)
	box := strings.Index(svg, `<g id="unit-1">`)
	if path == -1 || box == -1 || path > box {
		t.Error("relation paths must precede unit boxes")
	}
}

func TestRenderSVG_TitleEscaped(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithTitle("Trench <A> & B")))
	if !strings.Contains(svg, "Trench &lt;A&gt; &amp; B") {
		t.Error("title not HTML-escaped")
	}
}

func TestRenderSVG_TierGuides(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	if strings.Contains(plain, "tier-guide\" x1") {
		t.Error("tier guides drawn without the option")
	}

	guided := string(RenderSVG(testLayout(), WithTierGuides()))
	if strings.Count(guided, "<line class=\"tier-guide\"") != 2 {
		t.Errorf("want one guide per tier, got:\n%s", guided)
	}
}

func TestRenderSVG_UnknownTypeUsesDefaultFill(t *testing.T) {
	l := layout.Layout{
		Width:  100,
		Height: 100,
		Nodes:  []layout.Node{{ID: "X", Type: strata.TypeOther, X: 50, Y: 50}},
	}
	svg := string(RenderSVG(l))
	if !strings.Contains(svg, `fill="#f0f0f0"`) {
		t.Error("default fill not applied for untyped unit")
	}
}
