package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
)

// Publisher delivers newly observed quakes downstream.
type Publisher interface {
	PublishBatch(ctx context.Context, quakes []domain.Quake) error
}

// maxSeenIDs bounds the dedupe set. The feed window is re-fetched whole each
// poll, so recently seen IDs must be remembered across polls; anything older
// than a few windows can be forgotten.
const maxSeenIDs = 4096

// Options configures a Monitor poll loop.
type Options struct {
	Interval     time.Duration
	Lookback     time.Duration
	MinMagnitude float64
}

// Monitor polls the earthquake feed on an interval and publishes events not
// seen in previous polls. The publisher is optional; without one the monitor
// still polls, keeping metrics and readiness meaningful.
type Monitor struct {
	fetcher   domain.QuakeFetcher
	publisher Publisher
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool

	seen      map[string]struct{}
	seenOrder []string
}

// New creates a Monitor. publisher may be nil.
func New(fetcher domain.QuakeFetcher, publisher Publisher, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Monitor {
	return &Monitor{
		fetcher:   fetcher,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		seen:      make(map[string]struct{}),
	}
}

// CheckReadiness returns nil once at least one poll has succeeded.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("monitor has not completed a poll yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled. The first poll
// happens immediately; failures retry with exponential backoff instead of
// waiting a full interval.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		"interval", m.opts.Interval,
		"lookback", m.opts.Lookback,
		"min_magnitude", m.opts.MinMagnitude,
	)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		wait := m.opts.Interval
		if err := m.poll(ctx); err != nil {
			if ctx.Err() != nil {
				m.logger.Info("monitor stopping", "reason", ctx.Err())
				return nil
			}
			m.logger.Error("poll failed", "error", err)
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = 200 * time.Millisecond
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopping", "reason", ctx.Err())
			return nil
		case <-m.clock.After(wait):
		}
	}
}

// poll fetches the lookback window and publishes quakes not seen before.
func (m *Monitor) poll(ctx context.Context) error {
	now := m.clock.Now()
	quakes, err := m.fetcher.Window(ctx, now.Add(-m.opts.Lookback), now, m.opts.MinMagnitude)
	if err != nil {
		m.metrics.QuakePolls.WithLabelValues("error").Inc()
		return err
	}
	// The feed can revise magnitudes below the query floor between polls;
	// enforce the floor on what came back.
	quakes = domain.FilterQuakes(quakes, m.opts.MinMagnitude)

	fresh := m.markSeen(quakes)
	if len(fresh) == 0 {
		m.metrics.QuakePolls.WithLabelValues("empty").Inc()
		m.ready.Store(true)
		return nil
	}

	if m.publisher != nil {
		if err := m.publisher.PublishBatch(ctx, fresh); err != nil {
			m.metrics.QuakePolls.WithLabelValues("error").Inc()
			m.forget(fresh)
			return err
		}
		m.metrics.QuakesPublished.Add(float64(len(fresh)))
	}

	m.metrics.QuakePolls.WithLabelValues("success").Inc()
	m.ready.Store(true)
	m.logger.Info("new quakes observed", "count", len(fresh), "window_total", len(quakes))
	return nil
}

// markSeen records the quakes' IDs and returns those not seen before,
// evicting the oldest remembered IDs past the cap.
func (m *Monitor) markSeen(quakes []domain.Quake) []domain.Quake {
	var fresh []domain.Quake
	for _, q := range quakes {
		if _, ok := m.seen[q.ID]; ok {
			continue
		}
		m.seen[q.ID] = struct{}{}
		m.seenOrder = append(m.seenOrder, q.ID)
		fresh = append(fresh, q)
	}
	for len(m.seenOrder) > maxSeenIDs {
		delete(m.seen, m.seenOrder[0])
		m.seenOrder = m.seenOrder[1:]
	}
	return fresh
}

// forget drops IDs recorded by a poll whose publish failed, so the next poll
// retries them.
func (m *Monitor) forget(quakes []domain.Quake) {
	for _, q := range quakes {
		delete(m.seen, q.ID)
	}
	kept := m.seenOrder[:0]
	for _, id := range m.seenOrder {
		if _, ok := m.seen[id]; ok {
			kept = append(kept, id)
		}
	}
	m.seenOrder = kept
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
