package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/pipeline"
	"github.com/strataviz/harris/pkg/strata"
)

// layoutRequest is the body of POST /v1/layout.
type layoutRequest struct {
	Matrix  strata.Matrix    `json:"matrix"`
	Options pipeline.Options `json:"options,omitempty"`
}

// layoutResponse is the body of layout-producing endpoints.
type layoutResponse struct {
	Layout     any        `json:"layout"`
	MatrixHash string     `json:"matrix_hash"`
	CacheHit   bool       `json:"cache_hit"`
	Stats      statsBlock `json:"stats"`
}

type statsBlock struct {
	Units     int `json:"units"`
	Relations int `json:"relations"`
	Edges     int `json:"edges"`
	Removed   int `json:"removed_edges"`
	Ranks     int `json:"ranks"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "decode request body: %v", err))
		return
	}

	req.Options.Validate = true
	result, err := s.runner.Compute(r.Context(), req.Matrix, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:     result.Layout,
		MatrixHash: result.MatrixHash,
		CacheHit:   result.CacheHit,
		Stats: statsBlock{
			Units:     result.Stats.UnitCount,
			Relations: result.Stats.RelationCount,
			Edges:     result.Stats.EdgeCount,
			Removed:   result.Stats.RemovedEdges,
			Ranks:     result.Stats.RankCount,
		},
	})
}

func (s *Server) handleListMatrices(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matrices": summaries})
}

func (s *Server) handleSaveMatrix(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var m strata.Matrix
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "decode request body: %v", err))
		return
	}

	rec, err := s.store.Save(r.Context(), name, m, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGetMatrix(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteMatrix(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMatrixLayout computes (or serves the cached) layout for a stored
// matrix. Query parameters width and height override the canvas size.
func (s *Server) handleMatrixLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	var opts pipeline.Options
	if v := queryFloat(r, "width"); v > 0 {
		opts.Config.Width = v
	}
	if v := queryFloat(r, "height"); v > 0 {
		opts.Config.Height = v
	}

	result, err := s.runner.Compute(r.Context(), rec.Matrix, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:     result.Layout,
		MatrixHash: result.MatrixHash,
		CacheHit:   result.CacheHit,
		Stats: statsBlock{
			Units:     result.Stats.UnitCount,
			Relations: result.Stats.RelationCount,
			Edges:     result.Stats.EdgeCount,
			Removed:   result.Stats.RemovedEdges,
			Ranks:     result.Stats.RankCount,
		},
	})
}
