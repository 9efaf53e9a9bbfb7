package render

import (
	"strings"
	"testing"

	"github.com/strataviz/harris/pkg/strata"
)

func testGraph(t *testing.T) *strata.Graph {
	t.Helper()
	g := strata.NewGraph([]strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "2", Type: strata.TypeLayer},
		{ID: "H1", Type: strata.TypeAshPit, Description: "ash pit with sherds"},
	})
	for _, e := range [][2]string{{"1", "2"}, {"1", "H1"}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v) error = %v", e, err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(t), DOTOptions{})

	if !strings.HasPrefix(dot, "digraph harris {") {
		t.Errorf("unexpected header: %s", dot[:40])
	}
	for _, want := range []string{
		"rankdir=TB;",
		"edge [arrowhead=none];",
		`"1" -> "2";`,
		`"1" -> "H1";`,
		`"H1" [label="H1", style="rounded,filled", fillcolor="#eeeeee"];`,
		`"1" [label="1"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "rank=same") {
		t.Error("rank groups emitted without rank data")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testGraph(t), DOTOptions{Detailed: true})
	if !strings.Contains(dot, `label="H1\nASH_PIT\nash pit with sherds"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOT_RankGroups(t *testing.T) {
	ranks := map[string]int{"1": 0, "2": 1, "H1": 1}
	dot := ToDOT(testGraph(t), DOTOptions{Ranks: ranks})

	if !strings.Contains(dot, `{ rank=same; "1"; }`) {
		t.Errorf("tier 0 group missing:\n%s", dot)
	}
	if !strings.Contains(dot, `{ rank=same; "2"; "H1"; }`) {
		t.Errorf("tier 1 group missing or unsorted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="8pt" height="6pt" viewBox="0.00 0.00 216.00 188.00" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 216.00 188.00"`) {
		t.Errorf("viewBox not rewritten:\n%s", out)
	}
	if !strings.Contains(out, `width="216" height="188"`) {
		t.Errorf("pixel size not set:\n%s", out)
	}
	if strings.Contains(out, "8pt") {
		t.Error("point-based size survived")
	}
}

func TestNormalizeViewBox_NoViewBox(t *testing.T) {
	in := []byte("<svg><g/></svg>")
	if got := string(normalizeViewBox(in)); got != "<svg><g/></svg>" {
		t.Errorf("document without viewBox modified: %s", got)
	}
}
