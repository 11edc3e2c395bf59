package giss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
)

// Client implements domain.Source by downloading the GISTEMP anomaly CSV.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a dataset client for the given CSV URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch downloads and parses the dataset.
func (c *Client) Fetch(ctx context.Context) (domain.Series, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Series{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.DatasetFetches.WithLabelValues("error").Inc()
		return domain.Series{}, fmt.Errorf("dataset request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.DatasetFetches.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Series{}, fmt.Errorf("dataset API error: status %d: %s", resp.StatusCode, body)
	}

	obs, err := domain.ParseGISTEMP(resp.Body)
	if err != nil {
		c.metrics.DatasetFetches.WithLabelValues("error").Inc()
		return domain.Series{}, fmt.Errorf("parse dataset: %w", err)
	}

	c.metrics.DatasetFetches.WithLabelValues("success").Inc()
	c.metrics.ObservationsLoaded.Set(float64(len(obs)))
	c.logger.Info("dataset loaded",
		"observations", len(obs),
		"first_year", obs[0].Year,
		"last_year", obs[len(obs)-1].Year,
	)

	return domain.NewSeries(obs, c.url), nil
}
