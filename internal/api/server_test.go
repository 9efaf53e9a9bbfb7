package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/strataviz/harris/pkg/errors"
	"github.com/strataviz/harris/pkg/pipeline"
	"github.com/strataviz/harris/pkg/store"
)

func testServer(t *testing.T, st store.Store) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	return NewServer(pipeline.NewRunner(nil), st, logger).Router()
}

func testMatrixJSON() string {
	return `{
		"units": [
			{"id": "1", "type": "LAYER"},
			{"id": "2", "type": "LAYER"},
			{"id": "H1", "type": "ASH_PIT", "opening_layer_id": "1"}
		],
		"relations": [
			{"id": "r1", "source_id": "H1", "target_id": "2", "type": "OVERLAYS"}
		]
	}`
}

func TestHealthz(t *testing.T) {
	h := testServer(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := testServer(t, nil)
	body := fmt.Sprintf(`{"matrix": %s}`, testMatrixJSON())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp struct {
		Layout struct {
			Nodes []struct {
				ID   string `json:"id"`
				Rank int    `json:"rank"`
			} `json:"nodes"`
			RankCount int `json:"rank_count"`
		} `json:"layout"`
		MatrixHash string `json:"matrix_hash"`
		Stats      struct {
			Units int `json:"units"`
			Ranks int `json:"ranks"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Layout.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(resp.Layout.Nodes))
	}
	if resp.MatrixHash == "" {
		t.Error("matrix_hash is empty")
	}
	if resp.Stats.Units != 3 {
		t.Errorf("stats.units = %d, want 3", resp.Stats.Units)
	}
	if resp.Stats.Ranks != resp.Layout.RankCount {
		t.Errorf("stats.ranks = %d, layout says %d", resp.Stats.Ranks, resp.Layout.RankCount)
	}
}

func TestLayoutEndpoint_BadJSON(t *testing.T) {
	h := testServer(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "INVALID_INPUT" {
		t.Errorf("error.code = %q, want INVALID_INPUT", body.Error.Code)
	}
}

func TestLayoutEndpoint_InvalidMatrix(t *testing.T) {
	h := testServer(t, nil)
	body := `{"matrix": {"units": [{"id": "1", "type": "CASTLE"}]}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
	}
	var eb errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &eb); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if eb.Error.Code != "INVALID_MATRIX" {
		t.Errorf("error.code = %q, want INVALID_MATRIX", eb.Error.Code)
	}
}

func TestMatricesRoutesDisabledWithoutStore(t *testing.T) {
	h := testServer(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matrices/", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no store is configured", rec.Code)
	}
}

func TestMatricesCRUD(t *testing.T) {
	h := testServer(t, store.NewMemStore())

	// Save.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/matrices/site-a", strings.NewReader(testMatrixJSON())))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if saved.Name != "site-a" || saved.ID == "" {
		t.Errorf("saved = %+v", saved)
	}

	// List.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matrices/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET list status = %d", rec.Code)
	}
	var list struct {
		Matrices []struct {
			Name  string `json:"name"`
			Units int    `json:"units"`
		} `json:"matrices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Matrices) != 1 || list.Matrices[0].Name != "site-a" || list.Matrices[0].Units != 3 {
		t.Errorf("list = %+v", list)
	}

	// Get.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matrices/site-a", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}

	// Layout of stored matrix.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matrices/site-a/layout?width=1600", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET layout status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var lr struct {
		Layout struct {
			Width float64 `json:"width"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &lr); err != nil {
		t.Fatalf("decode layout response: %v", err)
	}
	if lr.Layout.Width != 1600 {
		t.Errorf("layout.width = %.0f, want the 1600 query override", lr.Layout.Width)
	}

	// Delete.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/matrices/site-a", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/matrices/site-a", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", rec.Code)
	}
}

func TestSaveMatrix_InvalidBody(t *testing.T) {
	h := testServer(t, store.NewMemStore())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/matrices/site-a", bytes.NewReader([]byte("nope"))))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStatsCountRemovedEdges(t *testing.T) {
	h := testServer(t, nil)
	// A chain with a shortcut: the 1 -> 3 assertion is implied by 1 -> 2 -> 3.
	body := `{"matrix": {
		"units": [
			{"id": "1", "type": "LAYER"},
			{"id": "2", "type": "LAYER"},
			{"id": "3", "type": "LAYER"}
		],
		"relations": [
			{"id": "r1", "source_id": "1", "target_id": "3", "type": "OVERLAYS"}
		]
	}}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Stats struct {
			Removed int `json:"removed_edges"`
			Edges   int `json:"edges"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Stats.Removed != 1 {
		t.Errorf("stats.removed_edges = %d, want 1", resp.Stats.Removed)
	}
	if resp.Stats.Edges != 2 {
		t.Errorf("stats.edges = %d, want 2", resp.Stats.Edges)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INVALID_MATRIX", http.StatusBadRequest},
		{"MATRIX_NOT_FOUND", http.StatusNotFound},
		{"UNSUPPORTED", http.StatusNotImplemented},
		{"STORE_ERROR", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.Code(tt.code)); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
