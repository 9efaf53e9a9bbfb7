// Package pipeline provides the core layout pipeline for Harris matrices.
//
// This package implements the complete build → reduce → rank → place → route
// computation that can be used by the CLI, the HTTP API, and direct library
// callers. Centralizing it ensures consistent behavior across all entry
// points.
//
// # Architecture
//
// A computation consists of five stages:
//
//  1. Build: union explicit and implicit relations into an adjacency graph
//  2. Reduce: drop edges implied by longer paths
//  3. Rank: assign each unit its depth tier
//  4. Place: assign canvas coordinates per tier
//  5. Route: plan orthogonal edge paths with crossing bridges
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache)
//	opts := pipeline.Options{Config: layout.Config{Width: 1600}}
//	result, err := runner.Compute(ctx, matrix, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.RankCount)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/strata"
)

// DefaultCacheTTL is how long cached layouts stay valid. Layouts are pure
// functions of their key, so the TTL only bounds disk usage.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Options contains all configuration for a layout computation.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Config is the layout geometry; zero fields take defaults.
	Config layout.Config `json:"config,omitempty"`

	// Overrides are the caller's manual adjustments.
	Overrides layout.Overrides `json:"overrides,omitempty"`

	// Validate rejects malformed input (bad enums, duplicate IDs) instead
	// of letting the engine degrade gracefully. Boundary surfaces (CLI,
	// API) turn this on; library callers may prefer the tolerant mode.
	Validate bool `json:"validate,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	o.Config = o.Config.WithDefaults()
	if o.Config.Width < 0 || o.Config.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size must be positive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the positioned, routed diagram.
	Layout layout.Layout

	// MatrixHash is the content hash of the input matrix.
	MatrixHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layout came from cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	UnitCount     int
	RelationCount int
	EdgeCount     int
	RemovedEdges  int
	RankCount     int

	BuildTime  time.Duration
	ReduceTime time.Duration
	RankTime   time.Duration
	LayoutTime time.Duration
}

// Validate rejects input the engine would otherwise silently tolerate.
// It is applied at boundary surfaces when Options.Validate is set.
func Validate(m strata.Matrix) error {
	return errors.ValidateMatrix(m)
}
