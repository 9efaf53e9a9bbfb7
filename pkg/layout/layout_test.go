package layout

import (
	"reflect"
	"testing"

	"github.com/strataviz/harris/pkg/layout/route"
	"github.com/strataviz/harris/pkg/strata"
	"github.com/strataviz/harris/pkg/strata/transform"
)

// buildLayout runs the full pipeline the way the runner does.
func buildLayout(units []strata.Unit, relations []strata.Relation, cfg Config, ov Overrides) Layout {
	g := transform.Build(units, relations)
	transform.Reduce(g)
	ranks := transform.AssignRanks(g)
	return Build(g, relations, ranks, cfg, ov)
}

func TestBuild_AshPitScenario(t *testing.T) {
	units := []strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
		{ID: "H2", Type: strata.TypeAshPit, OpeningLayerID: "1"},
	}
	relations := []strata.Relation{
		{ID: "r1", SourceID: "H1", TargetID: "H2", Type: strata.RelCuts},
	}

	l := buildLayout(units, relations, Config{}, Overrides{})

	layerNode, _ := l.Node("1")
	h1, _ := l.Node("H1")
	h2, _ := l.Node("H2")

	if layerNode.Rank != 0 {
		t.Errorf("rank(1) = %d, want 0", layerNode.Rank)
	}
	if h1.Rank != 1 || h2.Rank != 1 {
		t.Errorf("rank(H1)=%d rank(H2)=%d, want 1 and 1", h1.Rank, h2.Rank)
	}

	mid := l.Width / 2
	if !(h1.X < mid && h2.X > mid) {
		t.Errorf("pits not on opposite sides: H1 at %.1f, H2 at %.1f, mid %.1f", h1.X, h2.X, mid)
	}

	// Both opening-layer links persist plus the lateral cut.
	if len(l.Links) != 3 {
		t.Fatalf("len(Links) = %d, want 3", len(l.Links))
	}
	types := map[string]strata.RelationType{}
	for _, link := range l.Links {
		types[link.SourceID+"->"+link.TargetID] = link.Type
	}
	if types["1->H1"] != strata.RelOverlays || types["1->H2"] != strata.RelOverlays {
		t.Errorf("opening links = %v, want OVERLAYS for 1->H1 and 1->H2", types)
	}
	if types["H1->H2"] != strata.RelCuts {
		t.Errorf("cut link type = %v, want CUTS", types["H1->H2"])
	}

	// Routes are aligned by index with links.
	if len(l.Routes) != len(l.Links) {
		t.Fatalf("len(Routes) = %d, want %d", len(l.Routes), len(l.Links))
	}
	for i, r := range l.Routes {
		if r.LinkID != l.Links[i].ID {
			t.Errorf("route %d is for link %q, want %q", i, r.LinkID, l.Links[i].ID)
		}
	}

	// The aligned cut routes through matching side ports.
	for i, link := range l.Links {
		if link.Type == strata.RelCuts && l.Routes[i].Kind != route.KindSideBracket {
			t.Errorf("cut route kind = %q, want %q", l.Routes[i].Kind, route.KindSideBracket)
		}
	}
}

func TestBuild_Idempotent(t *testing.T) {
	units := []strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "2", Type: strata.TypeLayer},
		{ID: "2a", Type: strata.TypeLayer},
		{ID: "3", Type: strata.TypeLayer},
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
		{ID: "H2", Type: strata.TypeAshPit, OpeningLayerID: "1"},
		{ID: "M1", Type: strata.TypeTomb, OpeningLayerID: "2"},
	}
	relations := []strata.Relation{
		{ID: "r1", SourceID: "H1", TargetID: "H2", Type: strata.RelCuts},
	}

	a := buildLayout(units, relations, Config{}, Overrides{})
	b := buildLayout(units, relations, Config{}, Overrides{})

	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over identical input produced different layouts")
	}
}

func TestBuild_ImplicitLinkIDsStable(t *testing.T) {
	units := []strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "2", Type: strata.TypeLayer},
	}

	l := buildLayout(units, nil, Config{}, Overrides{})

	if len(l.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(l.Links))
	}
	if l.Links[0].ID != "1->2" {
		t.Errorf("implicit link ID = %q, want %q", l.Links[0].ID, "1->2")
	}
}

func TestBuild_ExplicitRelationWinsLinkIdentity(t *testing.T) {
	units := []strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "2", Type: strata.TypeLayer},
	}
	relations := []strata.Relation{
		{ID: "r9", SourceID: "1", TargetID: "2", Type: strata.RelOverlays},
	}

	l := buildLayout(units, relations, Config{}, Overrides{})

	if len(l.Links) != 1 {
		t.Fatalf("len(Links) = %d, want 1", len(l.Links))
	}
	if l.Links[0].ID != "r9" {
		t.Errorf("link ID = %q, want r9", l.Links[0].ID)
	}
}

func TestBuild_RankCount(t *testing.T) {
	units := []strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "2", Type: strata.TypeLayer},
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
	}

	l := buildLayout(units, nil, Config{}, Overrides{})

	if l.RankCount != 3 {
		t.Errorf("RankCount = %d, want 3", l.RankCount)
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{Width: 1600}.WithDefaults()

	if cfg.Width != 1600 {
		t.Errorf("Width = %.1f, want explicit 1600", cfg.Width)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("Height = %.1f, want default %.1f", cfg.Height, DefaultHeight)
	}
	if cfg.NodeWidth != DefaultNodeWidth {
		t.Errorf("NodeWidth = %.1f, want default %.1f", cfg.NodeWidth, DefaultNodeWidth)
	}
}
