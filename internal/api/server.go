// Package api implements the harris HTTP API.
//
// The API exposes the layout pipeline over HTTP for integrations that do not
// shell out to the CLI: recording databases, web front-ends, batch jobs. It
// has two surfaces:
//
//   - POST /v1/layout computes a layout for a matrix sent in the request body
//   - /v1/matrices stores named matrices (backed by MongoDB or memory) and
//     serves their computed layouts
//
// All responses are JSON. Errors carry the structured code from the errors
// package so clients can distinguish validation failures from server faults.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/strataviz/harris/pkg/pipeline"
	"github.com/strataviz/harris/pkg/store"
)

// Server wires the pipeline and the matrix store into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates an API server. The store may be nil, in which case the
// /v1/matrices routes respond 404.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes and middleware registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		if s.store != nil {
			r.Route("/matrices", func(r chi.Router) {
				r.Get("/", s.handleListMatrices)
				r.Put("/{name}", s.handleSaveMatrix)
				r.Get("/{name}", s.handleGetMatrix)
				r.Delete("/{name}", s.handleDeleteMatrix)
				r.Get("/{name}/layout", s.handleMatrixLayout)
			})
		}
	})

	return r
}

// requestLogger logs each request with method, path, status, and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
