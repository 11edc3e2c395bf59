package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiverging_ReversedDomain(t *testing.T) {
	s := NewDiverging(-0.5, 1.0)

	// High anomalies map to the warm end, low to the cool end.
	assert.Equal(t, "#a50026", s.Color(1.0))
	assert.Equal(t, "#313695", s.Color(-0.5))

	// The domain midpoint lands exactly on the neutral center stop.
	assert.Equal(t, "#ffffbf", s.Color(0.25))
}

func TestDiverging_ClampsOutOfDomain(t *testing.T) {
	s := NewDiverging(0, 1)

	assert.Equal(t, s.Color(1), s.Color(99))
	assert.Equal(t, s.Color(0), s.Color(-99))
}

func TestDiverging_DegenerateDomain(t *testing.T) {
	s := NewDiverging(0.5, 0.5)
	// All values collapse to the warm end rather than panicking.
	assert.Equal(t, "#a50026", s.Color(0.5))
}

func TestDiverging_GradientStops(t *testing.T) {
	s := NewDiverging(-0.5, 1.0)
	stops := s.GradientStops(10)

	require.Len(t, stops, 10)
	assert.Equal(t, 0.0, stops[0].Offset)
	assert.Equal(t, 1.0, stops[len(stops)-1].Offset)

	// Legend runs low (cool) to high (warm), left to right.
	assert.Equal(t, "#313695", stops[0].Color)
	assert.Equal(t, "#a50026", stops[len(stops)-1].Color)
}

func TestInterpolateRdYlBu_Endpoints(t *testing.T) {
	assert.Equal(t, "#a50026", interpolateRdYlBu(0))
	assert.Equal(t, "#313695", interpolateRdYlBu(1))
	assert.Equal(t, "#ffffbf", interpolateRdYlBu(0.5))
}
