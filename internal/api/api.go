// Package api exposes the knot catalog over HTTP.
//
// The surface is a small JSON REST API on top of a [store.Store]:
//
//	GET    /healthz            liveness probe
//	GET    /knots              list records, filterable by query parameters
//	POST   /knots              create a record
//	GET    /knots/{name}       fetch one record
//	DELETE /knots/{name}       delete a record
//	PATCH  /knots/{name}/metadata  merge metadata (empty value deletes a key)
//	POST   /check              compare two codes without storing them
//
// Errors are returned as JSON objects carrying the structured error code
// from pkg/errors.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/mgeier/knotwork/pkg/observability"
	"github.com/mgeier/knotwork/pkg/pipeline"
	"github.com/mgeier/knotwork/pkg/store"
)

// Server routes API requests to a store.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server over the given store. The runner supplies cached
// canonicalization; if nil, a runner without a cache is constructed. If
// logger is nil, log.Default() is used.
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(st, nil, logger)
	}
	return &Server{store: st, runner: runner, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/knots", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/{name}", s.handleFetch)
		r.Delete("/{name}", s.handleDelete)
		r.Patch("/{name}/metadata", s.handleUpdateMetadata)
	})

	r.Post("/check", s.handleCheck)

	return r
}

// logRequests logs method, path, status, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path, rec.status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed.Round(time.Microsecond))
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
