package giss

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
)

// CachedSource wraps a Source with a TTL cache. The upstream table changes
// about once a month, so one in-memory copy with a long TTL absorbs almost
// all request traffic.
type CachedSource struct {
	inner   domain.Source
	ttl     time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock

	mu        sync.Mutex
	series    domain.Series
	expiresAt time.Time
}

// NewCachedSource creates a TTL cache decorator around a dataset source.
func NewCachedSource(inner domain.Source, ttl time.Duration, logger *slog.Logger, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// CheckReadiness returns nil once a dataset has been loaded.
func (c *CachedSource) CheckReadiness(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.series.Len() == 0 {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Fetch returns the cached series while fresh and refreshes it otherwise.
// When a refresh fails but a previous load exists, the stale copy is served
// so the charts keep working across upstream outages.
func (c *CachedSource) Fetch(ctx context.Context) (domain.Series, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.series.Len() > 0 && now.Before(c.expiresAt) {
		c.metrics.DatasetCache.WithLabelValues("hit").Inc()
		return c.series, nil
	}

	series, err := c.inner.Fetch(ctx)
	if err != nil {
		if c.series.Len() > 0 {
			c.metrics.DatasetCache.WithLabelValues("stale").Inc()
			c.logger.Warn("dataset refresh failed, serving stale copy",
				"error", err,
				"loaded_at", c.series.LoadedAt,
			)
			return c.series, nil
		}
		c.metrics.DatasetCache.WithLabelValues("miss").Inc()
		return domain.Series{}, err
	}

	c.metrics.DatasetCache.WithLabelValues("miss").Inc()
	c.series = series
	c.expiresAt = now.Add(c.ttl)
	return series, nil
}
