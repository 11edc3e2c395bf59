package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the chart service.
type Metrics struct {
	DatasetFetches     *prometheus.CounterVec // labels: outcome={success,error}
	DatasetCache       *prometheus.CounterVec // labels: result={hit,miss,stale}
	ObservationsLoaded prometheus.Gauge

	// Rendering metrics.
	ChartRenders   *prometheus.CounterVec   // labels: chart={anomalies,quakes}, outcome={success,error}
	RenderDuration *prometheus.HistogramVec // labels: chart={anomalies,quakes}

	// Earthquake monitor metrics.
	QuakePolls         *prometheus.CounterVec // labels: outcome={success,error,empty}
	QuakesPublished    prometheus.Counter
	MonitorRunning     prometheus.Gauge
	QuakeFetchDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_charts",
			Name:      "dataset_fetches_total",
			Help:      "Temperature dataset fetches by outcome.",
		}, []string{"outcome"}),
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_charts",
			Name:      "dataset_cache_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		ObservationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_charts",
			Name:      "observations_loaded",
			Help:      "Number of yearly observations in the most recent dataset load.",
		}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_charts",
			Name:      "chart_renders_total",
			Help:      "Chart render requests by chart and outcome.",
		}, []string{"chart", "outcome"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_charts",
			Name:      "render_duration_seconds",
			Help:      "SVG render duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"chart"}),
		QuakePolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_charts",
			Name:      "quake_polls_total",
			Help:      "Earthquake feed polls by outcome.",
		}, []string{"outcome"}),
		QuakesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_charts",
			Name:      "quakes_published_total",
			Help:      "Total earthquake events published to the broker.",
		}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_charts",
			Name:      "monitor_running",
			Help:      "1 when the earthquake monitor is active, 0 when shut down.",
		}),
		QuakeFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_charts",
			Name:      "quake_fetch_duration_seconds",
			Help:      "USGS feed request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.DatasetFetches,
		m.DatasetCache,
		m.ObservationsLoaded,
		m.ChartRenders,
		m.RenderDuration,
		m.QuakePolls,
		m.QuakesPublished,
		m.MonitorRunning,
		m.QuakeFetchDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetFetches:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_charts", Name: "dataset_fetches_total"}, []string{"outcome"}),
		DatasetCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_charts", Name: "dataset_cache_total"}, []string{"result"}),
		ObservationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_charts", Name: "observations_loaded"}),
		ChartRenders:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_charts", Name: "chart_renders_total"}, []string{"chart", "outcome"}),
		RenderDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "climate_charts", Name: "render_duration_seconds"}, []string{"chart"}),
		QuakePolls:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_charts", Name: "quake_polls_total"}, []string{"outcome"}),
		QuakesPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_charts", Name: "quakes_published_total"}),
		MonitorRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_charts", Name: "monitor_running"}),
		QuakeFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_charts", Name: "quake_fetch_duration_seconds"}),
	}
}
