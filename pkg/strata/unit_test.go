package strata

import "testing"

func TestParseLayerKey(t *testing.T) {
	tests := []struct {
		id     string
		number int
		suffix string
	}{
		{"1", 1, ""},
		{"2a", 2, "a"},
		{"12", 12, ""},
		{"12bc", 12, "bc"},
		{"x", 0, "x"},
		{"", 0, ""},
	}
	for _, tt := range tests {
		k := ParseLayerKey(tt.id)
		if k.Number != tt.number || k.Suffix != tt.suffix {
			t.Errorf("ParseLayerKey(%q) = {%d %q}, want {%d %q}",
				tt.id, k.Number, k.Suffix, tt.number, tt.suffix)
		}
	}
}

func TestCompareLayerIDs_Ordering(t *testing.T) {
	ordered := []string{"1", "2", "2a", "2b", "3", "10"}
	for i := 0; i+1 < len(ordered); i++ {
		if CompareLayerIDs(ordered[i], ordered[i+1]) >= 0 {
			t.Errorf("CompareLayerIDs(%q, %q) >= 0, want < 0", ordered[i], ordered[i+1])
		}
	}
}

func TestCompareLayerIDs_Equal(t *testing.T) {
	if got := CompareLayerIDs("2a", "2a"); got != 0 {
		t.Errorf("CompareLayerIDs(2a, 2a) = %d, want 0", got)
	}
}

func TestCompareLayerIDs_KeyTieFallsBackToLexical(t *testing.T) {
	// "02" and "2" both parse to key (2, ""). The full-ID fallback keeps
	// the ordering total so layer sorts never depend on map order.
	if got := CompareLayerIDs("02", "2"); got >= 0 {
		t.Errorf("CompareLayerIDs(02, 2) = %d, want < 0", got)
	}
	if got := CompareLayerIDs("2", "02"); got <= 0 {
		t.Errorf("CompareLayerIDs(2, 02) = %d, want > 0", got)
	}
}

func TestIsLayer(t *testing.T) {
	if !TypeLayer.IsLayer() {
		t.Error("TypeLayer.IsLayer() = false, want true")
	}
	if TypeAshPit.IsLayer() {
		t.Error("TypeAshPit.IsLayer() = true, want false")
	}
}
