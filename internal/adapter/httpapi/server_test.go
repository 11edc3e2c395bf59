package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quietriver/climate-charts/internal/adapter/httpapi"
	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	series domain.Series
	err    error
}

func (m *mockSource) Fetch(_ context.Context) (domain.Series, error) {
	return m.series, m.err
}

type mockFetcher struct {
	quakes []domain.Quake
	err    error
}

func (m *mockFetcher) Window(_ context.Context, _, _ time.Time, _ float64) ([]domain.Quake, error) {
	return m.quakes, m.err
}

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func testSeries() domain.Series {
	return domain.Series{
		Observations: []domain.Observation{
			{Year: 2000, Anomaly: 0.4},
			{Year: 2001, Anomaly: 0.5},
			{Year: 2002, Anomaly: -0.1},
		},
		Source:   "test",
		LoadedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestServer(source *mockSource, quakes *mockFetcher, ready httpapi.ReadinessChecker) *httpapi.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapi.NewServer(":0", source, quakes, ready, logger, observability.NewMetricsForTesting())
}

func get(t *testing.T, srv *httpapi.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	rec := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, &mockReadiness{})
		rec := get(t, srv, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, &mockReadiness{err: fmt.Errorf("no poll yet")})
		rec := get(t, srv, "/readyz")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
		assert.Equal(t, "no poll yet", body["error"])
	})

	t.Run("nil checker is always ready", func(t *testing.T) {
		srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)
		rec := get(t, srv, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("composite fails on any unready part", func(t *testing.T) {
		ready := httpapi.ReadyAll(&mockReadiness{}, &mockReadiness{err: errors.New("dataset has not been loaded yet")})
		srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, ready)
		rec := get(t, srv, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	rec := get(t, srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAnomalyChart(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	rec := get(t, srv, "/charts/anomalies.svg")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
	assert.Contains(t, rec.Body.String(), "Global Temperature Anomalies")
}

func TestAnomalyChartZoomParams(t *testing.T) {
	src := &mockSource{series: testSeries()}
	srv := newTestServer(src, &mockFetcher{}, nil)

	base := get(t, srv, "/charts/anomalies.svg")
	require.Equal(t, http.StatusOK, base.Code)

	// k and tx are clamped, so even absurd values render.
	zoomed := get(t, srv, "/charts/anomalies.svg?k=99999&tx=-1e9")
	assert.Equal(t, http.StatusOK, zoomed.Code)

	rec := get(t, srv, "/charts/anomalies.svg?k=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, srv, "/charts/anomalies.svg?tx=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnomalyChartUpstreamError(t *testing.T) {
	srv := newTestServer(&mockSource{err: errors.New("giss down")}, &mockFetcher{}, nil)

	rec := get(t, srv, "/charts/anomalies.svg")

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dataset unavailable", body["error"])
}

func TestQuakeChart(t *testing.T) {
	quakes := &mockFetcher{quakes: []domain.Quake{
		{ID: "q1", Time: time.Now().UTC().Add(-2 * time.Hour), Magnitude: 5.1},
		{ID: "q2", Time: time.Now().UTC().Add(-time.Hour), Magnitude: 4.7},
	}}
	srv := newTestServer(&mockSource{series: testSeries()}, quakes, nil)

	rec := get(t, srv, "/charts/quakes.svg?days=3&min_mag=4.5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Earthquakes M4.5+ over the last 3 days")
}

func TestQuakeChartEmptyWindow(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	rec := get(t, srv, "/charts/quakes.svg")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data available")
}

func TestQuakeChartBadParams(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/charts/quakes.svg?days=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/charts/quakes.svg?days=soon").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/charts/quakes.svg?min_mag=-1").Code)
}

func TestQuakeChartUpstreamError(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{err: errors.New("usgs down")}, nil)

	rec := get(t, srv, "/charts/quakes.svg")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestObservationsEndpoint(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	rec := get(t, srv, "/api/observations")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		domain.Series
		RunningMean []domain.SmoothPoint `json:"running_mean"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Len())
	assert.Equal(t, "test", body.Source)
	require.Len(t, body.RunningMean, 3)
	assert.Equal(t, 2000, body.RunningMean[0].Year)
}

func TestStatsEndpoint(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	rec := get(t, srv, "/api/observations/stats")

	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2001, stats.WarmestYear)
	assert.Equal(t, 2002, stats.ColdestYear)
	assert.Equal(t, 2000, stats.MinYear)
	assert.Equal(t, 2002, stats.MaxYear)
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(&mockSource{series: testSeries()}, &mockFetcher{}, nil)

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/charts/unknown.svg").Code)
}
