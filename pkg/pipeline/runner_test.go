package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/strataviz/harris/pkg/cache"
	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/strata"
)

func testMatrix() strata.Matrix {
	return strata.Matrix{
		Units: []strata.Unit{
			{ID: "1", Type: strata.TypeLayer},
			{ID: "2", Type: strata.TypeLayer},
			{ID: "3", Type: strata.TypeLayer},
			{ID: "H1", Type: strata.TypeAshPit, OpeningLayerID: "1"},
		},
		Relations: []strata.Relation{
			{ID: "r1", SourceID: "H1", TargetID: "2", Type: strata.RelOverlays},
		},
	}
}

func TestCompute_NoCache(t *testing.T) {
	r := NewRunner(nil)
	defer r.Close()

	res, err := r.Compute(context.Background(), testMatrix(), Options{})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if res.CacheHit {
		t.Error("CacheHit = true on a null cache")
	}
	if res.MatrixHash == "" {
		t.Error("MatrixHash is empty")
	}
	if res.Stats.UnitCount != 4 {
		t.Errorf("Stats.UnitCount = %d, want 4", res.Stats.UnitCount)
	}
	if res.Stats.RelationCount != 1 {
		t.Errorf("Stats.RelationCount = %d, want 1", res.Stats.RelationCount)
	}
	if len(res.Layout.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4", len(res.Layout.Nodes))
	}
	if res.Stats.RankCount != res.Layout.RankCount {
		t.Errorf("Stats.RankCount = %d, layout has %d", res.Stats.RankCount, res.Layout.RankCount)
	}
}

func TestCompute_FileCacheRoundTrip(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c)
	defer r.Close()

	ctx := context.Background()
	first, err := r.Compute(ctx, testMatrix(), Options{})
	if err != nil {
		t.Fatalf("first Compute() error = %v", err)
	}
	if first.CacheHit {
		t.Fatal("first run reported a cache hit")
	}

	second, err := r.Compute(ctx, testMatrix(), Options{})
	if err != nil {
		t.Fatalf("second Compute() error = %v", err)
	}
	if !second.CacheHit {
		t.Fatal("second run missed the cache")
	}
	if !reflect.DeepEqual(first.Layout, second.Layout) {
		t.Error("cached layout differs from computed layout")
	}
	if second.MatrixHash != first.MatrixHash {
		t.Errorf("MatrixHash changed between runs: %s vs %s", first.MatrixHash, second.MatrixHash)
	}
	if second.Stats.RankCount != first.Stats.RankCount {
		t.Errorf("RankCount on hit = %d, want %d", second.Stats.RankCount, first.Stats.RankCount)
	}
}

func TestCompute_ConfigChangesCacheKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c)
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Compute(ctx, testMatrix(), Options{}); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	opts := Options{}
	opts.Config.Width = 900
	res, err := r.Compute(ctx, testMatrix(), opts)
	if err != nil {
		t.Fatalf("Compute() with custom width error = %v", err)
	}
	if res.CacheHit {
		t.Error("different config reused the cached layout")
	}
}

func TestCompute_EmptyMatrix(t *testing.T) {
	r := NewRunner(nil)

	_, err := r.Compute(context.Background(), strata.Matrix{}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidMatrix) {
		t.Errorf("Compute() error = %v, want %s", err, errors.ErrCodeInvalidMatrix)
	}
}

func TestCompute_ValidateRejectsDuplicates(t *testing.T) {
	r := NewRunner(nil)
	m := strata.Matrix{Units: []strata.Unit{
		{ID: "1", Type: strata.TypeLayer},
		{ID: "1", Type: strata.TypeLayer},
	}}

	_, err := r.Compute(context.Background(), m, Options{Validate: true})
	if !errors.Is(err, errors.ErrCodeInvalidMatrix) {
		t.Errorf("Compute() error = %v, want %s", err, errors.ErrCodeInvalidMatrix)
	}
}

func TestCompute_NegativeCanvasRejected(t *testing.T) {
	r := NewRunner(nil)
	opts := Options{}
	opts.Config.Width = -10

	_, err := r.Compute(context.Background(), testMatrix(), opts)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Compute() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if opts.Config.Width == 0 {
		t.Error("Config not defaulted")
	}

	// Idempotent.
	before := opts.Config
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Config != before {
		t.Error("defaults changed on second call")
	}
}
