package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
)

// fdsnTime is the timestamp layout the FDSN event service accepts.
const fdsnTime = "2006-01-02T15:04:05"

// Client implements domain.QuakeFetcher using the USGS FDSN event service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a USGS earthquake feed client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// eventQuery holds the FDSN query parameters.
type eventQuery struct {
	Format       string  `url:"format"`
	StartTime    string  `url:"starttime"`
	EndTime      string  `url:"endtime"`
	MinMagnitude float64 `url:"minmagnitude,omitempty"`
	OrderBy      string  `url:"orderby"`
}

// Window fetches the events between start and end at or above minMag,
// returned in ascending time order.
func (c *Client) Window(ctx context.Context, start, end time.Time, minMag float64) ([]domain.Quake, error) {
	q := eventQuery{
		Format:       "geojson",
		StartTime:    start.UTC().Format(fdsnTime),
		EndTime:      end.UTC().Format(fdsnTime),
		MinMagnitude: minMag,
		OrderBy:      "time-asc",
	}
	params, err := query.Values(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	began := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quake request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.QuakeFetchDuration.Observe(time.Since(began).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var collection featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	quakes := make([]domain.Quake, 0, len(collection.Features))
	for _, f := range collection.Features {
		// Events without a reviewed magnitude carry a null mag; skip them.
		if f.Properties.Mag == nil {
			continue
		}
		quake := domain.Quake{
			ID:        f.ID,
			Time:      time.UnixMilli(f.Properties.Time).UTC(),
			Magnitude: *f.Properties.Mag,
			Place:     f.Properties.Place,
		}
		if len(f.Geometry.Coordinates) >= 2 {
			quake.Geo = domain.Geo{Lat: f.Geometry.Coordinates[1], Lon: f.Geometry.Coordinates[0]}
		}
		if len(f.Geometry.Coordinates) >= 3 {
			quake.Depth = f.Geometry.Coordinates[2]
		}
		quakes = append(quakes, quake)
	}

	domain.SortQuakesByTime(quakes)
	c.logger.Debug("quake window fetched", "start", q.StartTime, "end", q.EndTime, "events", len(quakes))
	return quakes, nil
}

// USGS GeoJSON response types.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  int64    `json:"time"` // milliseconds since epoch
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}
