package cache

import (
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	h := Hash([]byte("abc"))
	if len(h) != 64 {
		t.Errorf("len(Hash) = %d, want 64 hex chars", len(h))
	}
	if h != Hash([]byte("abc")) {
		t.Error("Hash is not deterministic")
	}
	if h == Hash([]byte("abd")) {
		t.Error("different inputs hashed identically")
	}
}

func TestLayoutKey_Deterministic(t *testing.T) {
	opts := LayoutKeyOpts{Width: 1200, Height: 900, Config: map[string]int{"a": 1}}
	k1 := LayoutKey("deadbeef", opts)
	k2 := LayoutKey("deadbeef", opts)
	if k1 != k2 {
		t.Errorf("LayoutKey not deterministic: %s vs %s", k1, k2)
	}
	if !strings.HasPrefix(k1, "layout:") {
		t.Errorf("LayoutKey = %q, want layout: prefix", k1)
	}
}

func TestLayoutKey_SensitiveToInputs(t *testing.T) {
	base := LayoutKey("aaaa", LayoutKeyOpts{Width: 1200})
	if LayoutKey("bbbb", LayoutKeyOpts{Width: 1200}) == base {
		t.Error("key ignores matrix hash")
	}
	if LayoutKey("aaaa", LayoutKeyOpts{Width: 1600}) == base {
		t.Error("key ignores canvas width")
	}
	if LayoutKey("aaaa", LayoutKeyOpts{Width: 1200, Config: "x"}) == base {
		t.Error("key ignores config payload")
	}
}

func TestMatrixKey(t *testing.T) {
	k := MatrixKey([]byte("data"))
	if !strings.HasPrefix(k, "matrix:") {
		t.Errorf("MatrixKey = %q, want matrix: prefix", k)
	}
	if k != MatrixKey([]byte("data")) {
		t.Error("MatrixKey not deterministic")
	}
}
