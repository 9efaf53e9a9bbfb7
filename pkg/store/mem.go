package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/layout"
	"github.com/strataviz/harris/pkg/strata"
)

// MemStore is an in-memory Store. It backs the API when no MongoDB is
// configured and is the standard test double.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]Record)}
}

// Save inserts or replaces the record for a name.
func (s *MemStore) Save(ctx context.Context, name string, m strata.Matrix, l *layout.Layout) (Record, error) {
	if err := errors.ValidateName(name); err != nil {
		return Record{}, err
	}
	if err := errors.ValidateMatrix(m); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		ID:        uuid.NewString(),
		Name:      name,
		Matrix:    m,
		Layout:    l,
		UpdatedAt: time.Now().UTC(),
	}
	if existing, ok := s.records[name]; ok {
		rec.ID = existing.ID
	}
	s.records[name] = rec
	return rec, nil
}

// Get returns the record stored under a name.
func (s *MemStore) Get(ctx context.Context, name string) (Record, error) {
	if err := errors.ValidateName(name); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	if !ok {
		return Record{}, errors.New(errors.ErrCodeMatrixNotFound, "matrix %q not found", name)
	}
	return rec, nil
}

// List returns summaries of all stored matrices, sorted by name.
func (s *MemStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, Summary{
			ID:        rec.ID,
			Name:      rec.Name,
			Units:     len(rec.Matrix.Units),
			UpdatedAt: rec.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the record stored under a name.
func (s *MemStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		return errors.New(errors.ErrCodeMatrixNotFound, "matrix %q not found", name)
	}
	delete(s.records, name)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close(ctx context.Context) error {
	return nil
}
