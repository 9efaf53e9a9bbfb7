package pipeline

import (
	"context"
	"time"

	"github.com/strataviz/harris/pkg/cache"
	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/observability"
	"github.com/strataviz/harris/pkg/strata"
	"github.com/strataviz/harris/pkg/strata/transform"
)

// Runner executes the layout pipeline with caching.
type Runner struct {
	cache cache.Cache
}

// NewRunner creates a pipeline runner. A nil cache disables caching.
func NewRunner(c cache.Cache) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{cache: c}
}

// Compute runs the full pipeline for a matrix and returns the routed layout.
//
// The computation is pure: the same matrix and options always produce the
// same layout, which is what makes content-addressed caching sound. Cache
// failures are logged and ignored so a broken cache directory never blocks
// a computation.
func (r *Runner) Compute(ctx context.Context, m strata.Matrix, opts Options) (Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	logger := opts.Logger

	if opts.Validate {
		if err := Validate(m); err != nil {
			return Result{}, err
		}
	} else if len(m.Units) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidMatrix, "matrix must contain at least one unit")
	}

	start := time.Now()
	observability.Layout().OnComputeStart(ctx, len(m.Units), len(m.Relations))

	result := Result{
		Stats: Stats{
			UnitCount:     len(m.Units),
			RelationCount: len(m.Relations),
		},
	}

	// Cache key covers everything the output depends on: matrix content,
	// geometry config, and manual overrides.
	data, err := strata.MarshalMatrix(m)
	if err != nil {
		observability.Layout().OnComputeComplete(ctx, time.Since(start), err)
		return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "hash matrix")
	}
	result.MatrixHash = cache.Hash(data)
	key := cache.LayoutKey(result.MatrixHash, cache.LayoutKeyOpts{
		Width:  opts.Config.Width,
		Height: opts.Config.Height,
		Config: [2]any{opts.Config, opts.Overrides},
	})

	if cached, ok, cerr := r.cache.Get(ctx, key); cerr != nil {
		logger.Warn("cache read failed", "error", cerr)
	} else if ok {
		l, uerr := layout.UnmarshalLayout(cached)
		if uerr == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			result.Layout = l
			result.CacheHit = true
			result.Stats.RankCount = l.RankCount
			observability.Layout().OnComputeComplete(ctx, time.Since(start), nil)
			return result, nil
		}
		logger.Warn("discarding unreadable cache entry", "key", key, "error", uerr)
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	g := r.stageBuild(ctx, m, &result.Stats)
	r.stageReduce(ctx, g, &result.Stats)
	ranks := r.stageRank(ctx, g, &result.Stats)
	result.Layout = r.stageLayout(ctx, g, m.Relations, ranks, opts, &result.Stats)
	result.Stats.RankCount = result.Layout.RankCount

	logger.Debug("pipeline complete",
		"units", result.Stats.UnitCount,
		"edges", result.Stats.EdgeCount,
		"removed", result.Stats.RemovedEdges,
		"ranks", result.Stats.RankCount,
		"elapsed", time.Since(start))

	if data, merr := layout.MarshalLayout(result.Layout); merr == nil {
		if serr := r.cache.Set(ctx, key, data, DefaultCacheTTL); serr != nil {
			logger.Warn("cache write failed", "error", serr)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	observability.Layout().OnComputeComplete(ctx, time.Since(start), nil)
	return result, nil
}

func (r *Runner) stageBuild(ctx context.Context, m strata.Matrix, stats *Stats) *strata.Graph {
	t := time.Now()
	g := transform.Build(m.Units, m.Relations)
	stats.BuildTime = time.Since(t)
	observability.Layout().OnStage(ctx, "build", stats.BuildTime)
	return g
}

func (r *Runner) stageReduce(ctx context.Context, g *strata.Graph, stats *Stats) {
	t := time.Now()
	stats.RemovedEdges = transform.Reduce(g)
	stats.EdgeCount = g.EdgeCount()
	stats.ReduceTime = time.Since(t)
	observability.Layout().OnStage(ctx, "reduce", stats.ReduceTime)
}

func (r *Runner) stageRank(ctx context.Context, g *strata.Graph, stats *Stats) map[string]int {
	t := time.Now()
	ranks := transform.AssignRanks(g)
	stats.RankTime = time.Since(t)
	observability.Layout().OnStage(ctx, "rank", stats.RankTime)
	return ranks
}

func (r *Runner) stageLayout(ctx context.Context, g *strata.Graph, relations []strata.Relation, ranks map[string]int, opts Options, stats *Stats) layout.Layout {
	t := time.Now()
	l := layout.Build(g, relations, ranks, opts.Config, opts.Overrides)
	stats.LayoutTime = time.Since(t)
	observability.Layout().OnStage(ctx, "layout", stats.LayoutTime)
	return l
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.cache.Close()
}
