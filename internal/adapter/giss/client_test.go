package giss

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Land-Ocean: Global Means
Year,Jan,Feb,J-D,D-N
1880,-0.19,-0.24,-0.17,***
1881,-0.10,-0.13,-0.09,-0.10
1882,-0.03,0.09,-0.11,-0.10
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, sampleCSV)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger(), observability.NewMetricsForTesting())

	series, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, series.Len())
	assert.Equal(t, domain.Observation{Year: 1880, Anomaly: -0.17}, series.Observations[0])
	assert.Equal(t, domain.Observation{Year: 1882, Anomaly: -0.11}, series.Observations[2])
	assert.Equal(t, srv.URL, series.Source)
	assert.False(t, series.LoadedAt.IsZero())
}

func TestClient_FetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger(), observability.NewMetricsForTesting())

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_FetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "Title only, no header or rows\n")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger(), observability.NewMetricsForTesting())

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dataset")
}

func TestClient_FetchContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, discardLogger(), observability.NewMetricsForTesting())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx)
	require.Error(t, err)
}
