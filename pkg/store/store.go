// Package store provides persistence for named stratigraphic matrices.
//
// A store keeps matrices (and optionally their computed layouts) under
// user-chosen names so field data can be revisited across sessions. The
// MongoDB backend serves the HTTP API; the pipeline itself never depends
// on a store.
package store

import (
	"context"
	"time"

	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/strata"
)

// Record is a stored matrix with optional layout artifacts.
type Record struct {
	ID        string         `json:"id" bson:"id"`
	Name      string         `json:"name" bson:"name"`
	Matrix    strata.Matrix  `json:"matrix" bson:"matrix"`
	Layout    *layout.Layout `json:"layout,omitempty" bson:"layout,omitempty"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// Summary is the listing view of a record, without the matrix payload.
type Summary struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Units     int       `json:"units" bson:"units"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists named matrices.
type Store interface {
	// Save inserts or replaces the record for a name and returns it with
	// its assigned ID and timestamp.
	Save(ctx context.Context, name string, m strata.Matrix, l *layout.Layout) (Record, error)

	// Get returns the record stored under a name.
	Get(ctx context.Context, name string) (Record, error)

	// List returns summaries of all records, sorted by name.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes the record stored under a name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
