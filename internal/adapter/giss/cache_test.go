package giss

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/quietriver/climate-charts/internal/domain"
	"github.com/quietriver/climate-charts/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls  int
	series domain.Series
	err    error
}

func (f *fakeSource) Fetch(context.Context) (domain.Series, error) {
	f.calls++
	if f.err != nil {
		return domain.Series{}, f.err
	}
	return f.series, nil
}

func testSeries() domain.Series {
	return domain.Series{
		Observations: []domain.Observation{{Year: 2000, Anomaly: 0.4}},
		Source:       "test",
		LoadedAt:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestCache(inner domain.Source, ttl time.Duration) (*CachedSource, *clockwork.FakeClock) {
	c := NewCachedSource(inner, ttl, discardLogger(), observability.NewMetricsForTesting())
	fake := clockwork.NewFakeClock()
	c.clock = fake
	return c, fake
}

func TestCachedSource_ServesFromCacheWithinTTL(t *testing.T) {
	inner := &fakeSource{series: testSeries()}
	cache, _ := newTestCache(inner, time.Hour)

	first, err := cache.Fetch(context.Background())
	require.NoError(t, err)

	second, err := cache.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedSource_RefreshesAfterTTL(t *testing.T) {
	inner := &fakeSource{series: testSeries()}
	cache, clock := newTestCache(inner, time.Hour)

	_, err := cache.Fetch(context.Background())
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)

	_, err = cache.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_ServesStaleOnRefreshError(t *testing.T) {
	inner := &fakeSource{series: testSeries()}
	cache, clock := newTestCache(inner, time.Hour)

	first, err := cache.Fetch(context.Background())
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	inner.err = errors.New("upstream down")

	stale, err := cache.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, stale)
}

func TestCachedSource_Readiness(t *testing.T) {
	inner := &fakeSource{series: testSeries()}
	cache, _ := newTestCache(inner, time.Hour)

	assert.Error(t, cache.CheckReadiness(context.Background()))

	_, err := cache.Fetch(context.Background())
	require.NoError(t, err)
	assert.NoError(t, cache.CheckReadiness(context.Background()))
}

func TestCachedSource_ErrorWithoutCachedCopy(t *testing.T) {
	inner := &fakeSource{err: errors.New("upstream down")}
	cache, _ := newTestCache(inner, time.Hour)

	_, err := cache.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}
