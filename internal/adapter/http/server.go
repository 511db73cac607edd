// Package http exposes the forecast API plus health, readiness, and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/climate-forecast/internal/domain"
	"github.com/couchcryptid/climate-forecast/internal/export"
	"github.com/couchcryptid/climate-forecast/internal/observability"
	"github.com/couchcryptid/climate-forecast/internal/render"
	"github.com/couchcryptid/climate-forecast/internal/simulate"
)

// SeriesProvider hands out the current historical series snapshot and
// reports whether one has been loaded.
type SeriesProvider interface {
	Current() []domain.HistoricalRecord
	CheckReadiness(ctx context.Context) error
}

// ResultPublisher forwards completed simulation results to downstream
// consumers. May be nil when publishing is disabled.
type ResultPublisher interface {
	PublishResult(ctx context.Context, result simulate.Result) error
}

// Server exposes the forecast HTTP API.
type Server struct {
	httpServer *http.Server
	provider   SeriesProvider
	simulator  *simulate.Simulator
	publisher  ResultPublisher
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the API server. publisher may be nil.
func NewServer(addr string, provider SeriesProvider, simulator *simulate.Simulator, publisher ResultPublisher, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider:  provider,
		simulator: simulator,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(provider))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/series", s.handleSeries)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("GET /api/export", s.handleExport)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(provider SeriesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := provider.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleSeries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"records": s.provider.Current()})
}

type simulateRequest struct {
	Model string `json:"model"`
	Year  int    `json:"year"`
}

type simulateResponse struct {
	Result simulate.Result  `json:"result"`
	Chart  render.ChartData `json:"chart"`
}

// handleSimulate runs one simulation. Malformed requests are HTTP 400;
// simulation-level rejections (invalid year, implausible prediction,
// calculation fault) are HTTP 200 with the outcome's error message set —
// the run itself always produces a well-formed result.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	kind, err := domain.ParseModelKind(req.Model)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records := s.provider.Current()
	result := s.simulator.Run(records, kind, req.Year)

	s.publish(r.Context(), result)

	writeJSON(w, http.StatusOK, simulateResponse{
		Result: result,
		Chart:  render.Chart(records, kind, result.TrendLine),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseModelKind(r.URL.Query().Get("model"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid year"})
		return
	}

	records := s.provider.Current()
	result := s.simulator.Run(records, kind, year)
	payload := export.CSV(records, result)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("climate_prediction_%s_%d.csv", kind, year)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(payload))
}

// publish forwards a completed run to the results topic. Failures are logged
// and counted, never surfaced to the caller.
func (s *Server) publish(ctx context.Context, result simulate.Result) {
	if s.publisher == nil || result.Rejected() {
		return
	}
	if err := s.publisher.PublishResult(ctx, result); err != nil {
		s.metrics.ResultsPublished.WithLabelValues("error").Inc()
		s.logger.Warn("publishing simulation result failed", "error", err)
		return
	}
	s.metrics.ResultsPublished.WithLabelValues("success").Inc()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
