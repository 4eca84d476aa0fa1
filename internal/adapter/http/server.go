// Package http exposes the solution API plus health and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/swashes-solutions/internal/domain"
	"github.com/couchcryptid/swashes-solutions/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the solution, health, readiness, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	solver     domain.Solver
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1/solutions, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, solver domain.Solver, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // fine discretizations take a while to compute
			IdleTimeout:  60 * time.Second,
		},
		solver:  solver,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /v1/solutions", s.handleSolutions)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleSolutions computes (or serves from cache) one analytic solution.
//
//	GET /v1/solutions?dim=2&type=1&domain=1&choice=1&nx=50&ny=50&format=csv
//
// format is "json" (default) or "csv".
func (s *Server) handleSolutions(w http.ResponseWriter, r *http.Request) {
	c, err := caseFromQuery(r)
	if err != nil {
		s.metrics.SolutionRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		s.metrics.SolutionRequests.WithLabelValues("bad_request").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be json or csv"})
		return
	}

	table, err := s.solver.Solve(r.Context(), c)
	if err != nil {
		s.metrics.SolutionRequests.WithLabelValues("error").Inc()
		s.logger.Error("solve failed", "case", c.Key(), "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	s.metrics.SolutionRequests.WithLabelValues("success").Inc()
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(table.CSV() + "\n"))
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// caseFromQuery builds and validates a solution case from query parameters.
func caseFromQuery(r *http.Request) (domain.Case, error) {
	q := r.URL.Query()

	dim, err := domain.ParseDimension(q.Get("dim"))
	if err != nil {
		return domain.Case{}, err
	}

	c := domain.Case{Dimension: dim}
	for _, p := range []struct {
		name     string
		dst      *int
		required bool
	}{
		{"type", &c.Type, true},
		{"domain", &c.Domain, true},
		{"choice", &c.Choice, true},
		{"nx", &c.CellsX, true},
		{"ny", &c.CellsY, false},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			if p.required {
				return domain.Case{}, errors.New("missing query parameter " + p.name)
			}
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Case{}, errors.New("query parameter " + p.name + " must be an integer")
		}
		*p.dst = v
	}

	if err := c.Validate(); err != nil {
		return domain.Case{}, err
	}
	return c, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
