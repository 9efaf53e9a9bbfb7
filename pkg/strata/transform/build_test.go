package transform

import (
	"testing"

	"github.com/strataviz/harris/pkg/strata"
)

func layer(id string) strata.Unit {
	return strata.Unit{ID: id, Type: strata.TypeLayer}
}

func TestBuild_LayerChain(t *testing.T) {
	units := []strata.Unit{layer("1"), layer("2"), layer("2a"), layer("3")}

	g := Build(units, nil)

	chain := [][2]string{{"1", "2"}, {"2", "2a"}, {"2a", "3"}}
	for _, e := range chain {
		if !g.HasEdge(e[0], e[1]) {
			t.Errorf("missing layer chain edge %s->%s", e[0], e[1])
		}
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestBuild_OpeningLayerEdges(t *testing.T) {
	units := []strata.Unit{
		layer("1"),
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
		{ID: "H2", Type: strata.TypeAshPit, OpeningLayerID: "1"},
	}

	g := Build(units, nil)

	if !g.HasEdge("1", "H1") {
		t.Error("missing opening layer edge 1->H1")
	}
	if !g.HasEdge("1", "H2") {
		t.Error("missing opening layer edge 1->H2")
	}
}

func TestBuild_UnknownReferencesDropped(t *testing.T) {
	units := []strata.Unit{
		layer("1"),
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "99"},
	}
	relations := []strata.Relation{
		{ID: "r1", SourceID: "H1", TargetID: "ghost", Type: strata.RelOverlays},
		{ID: "r2", SourceID: "ghost", TargetID: "H1", Type: strata.RelOverlays},
	}

	g := Build(units, relations)

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 (all references unknown)", g.EdgeCount())
	}
}

func TestBuild_SelfOpeningLayerIgnored(t *testing.T) {
	units := []strata.Unit{
		{ID: "1", Type: strata.TypeLayer, OpeningLayerID: "1"},
	}

	g := Build(units, nil)

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestBuild_ExplicitAndImplicitUnion(t *testing.T) {
	units := []strata.Unit{
		layer("1"), layer("2"),
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
	}
	relations := []strata.Relation{
		{ID: "r1", SourceID: "H1", TargetID: "2", Type: strata.RelOverlays},
	}

	g := Build(units, relations)

	for _, e := range [][2]string{{"1", "2"}, {"1", "H1"}, {"H1", "2"}} {
		if !g.HasEdge(e[0], e[1]) {
			t.Errorf("missing edge %s->%s", e[0], e[1])
		}
	}
}

func TestBuild_CutsStayLateral(t *testing.T) {
	// A cut between two pits is drawn as a link but never enters the
	// adjacency: both pits keep the tier their opening layer gives them.
	units := []strata.Unit{
		layer("1"),
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
		{ID: "H2", Type: strata.TypeAshPit, OpeningLayerID: "1"},
	}
	relations := []strata.Relation{
		{ID: "r1", SourceID: "H1", TargetID: "H2", Type: strata.RelCuts},
	}

	g := Build(units, relations)

	if g.HasEdge("H1", "H2") {
		t.Error("CUTS relation produced an adjacency edge")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBuild_OrderIndependent(t *testing.T) {
	a := []strata.Unit{
		layer("1"), layer("2"),
		{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
	}
	b := []strata.Unit{a[2], a[1], a[0]}
	relations := []strata.Relation{
		{ID: "r1", SourceID: "H1", TargetID: "2", Type: strata.RelOverlays},
	}

	g1 := Build(a, relations)
	g2 := Build(b, relations)

	e1, e2 := g1.Edges(), g2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("edge counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edge %d differs: %v vs %v", i, e1[i], e2[i])
		}
	}
}
