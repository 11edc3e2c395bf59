package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear_ApplyInvert(t *testing.T) {
	s := NewLinear(1880, 2024, 0, 860)

	assert.InDelta(t, 0, s.Apply(1880), 1e-9)
	assert.InDelta(t, 860, s.Apply(2024), 1e-9)
	assert.InDelta(t, 430, s.Apply(1952), 1e-9)

	assert.InDelta(t, 1952, s.Invert(430), 1e-9)
	assert.InDelta(t, 1880, s.Invert(0), 1e-9)
}

func TestLinear_ReversedRange(t *testing.T) {
	// The y-scale maps up the screen: larger values get smaller pixels.
	s := NewLinear(-0.5, 1.5, 400, 0)

	assert.InDelta(t, 400, s.Apply(-0.5), 1e-9)
	assert.InDelta(t, 0, s.Apply(1.5), 1e-9)
	assert.Greater(t, s.Apply(0.0), s.Apply(1.0))
}

func TestLinear_DegenerateDomain(t *testing.T) {
	s := NewLinear(5, 5, 0, 100)

	// Everything maps to the range midpoint.
	assert.InDelta(t, 50, s.Apply(5), 1e-9)
	assert.InDelta(t, 50, s.Apply(123), 1e-9)

	// Nice widens the domain so the axis still has extent.
	nice := s.Nice(10)
	d0, d1 := nice.Domain()
	assert.Less(t, d0, d1)
	assert.LessOrEqual(t, d0, 5.0)
	assert.GreaterOrEqual(t, d1, 5.0)
}

func TestLinear_Step(t *testing.T) {
	s := NewLinear(1879.5, 2024.5, 0, 870)
	// 145 domain units over 870 pixels: 6 pixels per year.
	assert.InDelta(t, 6, s.Step(), 1e-9)
}

func TestLinear_Nice(t *testing.T) {
	s := NewLinear(-0.48, 1.17, 400, 0).Nice(10)
	d0, d1 := s.Domain()

	assert.InDelta(t, -0.6, d0, 1e-9)
	assert.InDelta(t, 1.2, d1, 1e-9)

	// Range untouched.
	r0, r1 := s.Range()
	assert.Equal(t, 400.0, r0)
	assert.Equal(t, 0.0, r1)
}

func TestLinear_Ticks(t *testing.T) {
	t.Run("unit interval", func(t *testing.T) {
		ticks := NewLinear(0, 1, 0, 100).Ticks(10)
		require.Len(t, ticks, 11)
		assert.InDelta(t, 0, ticks[0], 1e-9)
		assert.InDelta(t, 0.5, ticks[5], 1e-9)
		assert.InDelta(t, 1, ticks[10], 1e-9)
	})

	t.Run("year span", func(t *testing.T) {
		ticks := NewLinear(1880, 2024, 0, 860).Ticks(10)
		require.NotEmpty(t, ticks)
		assert.InDelta(t, 1880, ticks[0], 1e-9)
		assert.InDelta(t, 2020, ticks[len(ticks)-1], 1e-9)
		// Round 20-year steps for this span and count.
		assert.InDelta(t, 20, ticks[1]-ticks[0], 1e-9)
	})

	t.Run("degenerate domain", func(t *testing.T) {
		ticks := NewLinear(3, 3, 0, 100).Ticks(10)
		assert.Equal(t, []float64{3}, ticks)
	})
}

func TestTickStep_RoundFactors(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		expected    float64
	}{
		{"factor one", 0, 10, 10, 1},
		{"factor two", 0, 144, 10, 20},
		{"factor five", 0, 50, 10, 5},
		{"fractional", 0, 1, 10, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tickStep(tt.start, tt.stop, tt.count), 1e-9)
		})
	}
}
