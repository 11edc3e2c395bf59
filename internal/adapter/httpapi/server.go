package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quietriver/climate-charts/internal/chart"
	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

type readyAll []ReadinessChecker

func (r readyAll) CheckReadiness(ctx context.Context) error {
	for _, c := range r {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

// ReadyAll combines checkers; the service is ready when all of them are.
func ReadyAll(checkers ...ReadinessChecker) ReadinessChecker {
	return readyAll(checkers)
}

const (
	defaultQuakeDays   = 7
	maxQuakeDays       = 30
	defaultQuakeMinMag = 4.5
)

// Server exposes the chart, data, health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	source     domain.Source
	quakes     domain.QuakeFetcher
	anomaly    *chart.AnomalyChart
	ready      ReadinessChecker
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// NewServer creates the HTTP server and routes. ready may be nil when no
// background component gates readiness; /readyz then always reports ready.
func NewServer(addr string, source domain.Source, quakes domain.QuakeFetcher, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source:  source,
		quakes:  quakes,
		anomaly: chart.NewAnomalyChart(chart.DefaultDimensions()),
		ready:   ready,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /charts/anomalies.svg", s.handleAnomalyChart)
	mux.HandleFunc("GET /charts/quakes.svg", s.handleQuakeChart)
	mux.HandleFunc("GET /api/observations", s.handleObservations)
	mux.HandleFunc("GET /api/observations/stats", s.handleStats)

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

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.ready.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleAnomalyChart renders the anomaly chart. The optional k and tx query
// parameters apply a zoom transform; out-of-range values are clamped rather
// than rejected, so any k/tx pair produces a valid view.
func (s *Server) handleAnomalyChart(w http.ResponseWriter, r *http.Request) {
	k, err := queryFloat(r, "k", 1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "k must be a number"})
		return
	}
	tx, err := queryFloat(r, "tx", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tx must be a number"})
		return
	}

	series, err := s.source.Fetch(r.Context())
	if err != nil {
		s.metrics.ChartRenders.WithLabelValues("anomalies", "error").Inc()
		s.logger.Error("dataset fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "dataset unavailable"})
		return
	}

	began := time.Now()
	svg, err := s.anomaly.Render(series.Observations, chart.Transform{K: k, TX: tx})
	if err != nil {
		s.metrics.ChartRenders.WithLabelValues("anomalies", "error").Inc()
		s.logger.Error("anomaly render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	s.metrics.RenderDuration.WithLabelValues("anomalies").Observe(time.Since(began).Seconds())
	s.metrics.ChartRenders.WithLabelValues("anomalies", "success").Inc()

	writeSVG(w, svg)
}

// handleQuakeChart renders recent earthquake magnitudes over time. days
// selects the window (clamped to 30) and min_mag the magnitude floor.
func (s *Server) handleQuakeChart(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", defaultQuakeDays)
	if err != nil || days < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be a positive integer"})
		return
	}
	if days > maxQuakeDays {
		days = maxQuakeDays
	}
	minMag, err := queryFloat(r, "min_mag", defaultQuakeMinMag)
	if err != nil || minMag < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "min_mag must be a non-negative number"})
		return
	}

	end := s.clock.Now().UTC()
	start := end.AddDate(0, 0, -days)

	quakes, err := s.quakes.Window(r.Context(), start, end, minMag)
	if err != nil {
		s.metrics.ChartRenders.WithLabelValues("quakes", "error").Inc()
		s.logger.Error("quake fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "earthquake feed unavailable"})
		return
	}

	points := make([]chart.TimePoint, len(quakes))
	for i, q := range quakes {
		points[i] = chart.TimePoint{T: q.Time, V: q.Magnitude}
	}

	title := fmt.Sprintf("Earthquakes M%.1f+ over the last %d days", minMag, days)
	began := time.Now()
	svg, err := chart.NewLineChart(title, "Magnitude").Render(points)
	if err != nil {
		s.metrics.ChartRenders.WithLabelValues("quakes", "error").Inc()
		s.logger.Error("quake render failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	s.metrics.RenderDuration.WithLabelValues("quakes").Observe(time.Since(began).Seconds())
	s.metrics.ChartRenders.WithLabelValues("quakes", "success").Inc()

	writeSVG(w, svg)
}

// observationsResponse pairs the raw series with its smoothed trend so API
// consumers get the same data the chart draws.
type observationsResponse struct {
	domain.Series
	RunningMean []domain.SmoothPoint `json:"running_mean"`
}

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	series, err := s.source.Fetch(r.Context())
	if err != nil {
		s.logger.Error("dataset fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "dataset unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, observationsResponse{
		Series:      series,
		RunningMean: domain.RunningMean(series.Observations, s.anomaly.Smoothing),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	series, err := s.source.Fetch(r.Context())
	if err != nil {
		s.logger.Error("dataset fetch failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "dataset unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, domain.ComputeStats(series.Observations))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeSVG(w http.ResponseWriter, svg string) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg)) //nolint:errcheck // best-effort response
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.ParseFloat(v, 64)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
