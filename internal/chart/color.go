package chart

import (
	"fmt"
	"math"
)

// rdYlBu holds the 11-stop red-yellow-blue diverging palette, warm end first.
var rdYlBu = [][3]uint8{
	{0xa5, 0x00, 0x26},
	{0xd7, 0x30, 0x27},
	{0xf4, 0x6d, 0x43},
	{0xfd, 0xae, 0x61},
	{0xfe, 0xe0, 0x90},
	{0xff, 0xff, 0xbf},
	{0xe0, 0xf3, 0xf8},
	{0xab, 0xd9, 0xe9},
	{0x74, 0xad, 0xd1},
	{0x45, 0x75, 0xb4},
	{0x31, 0x36, 0x95},
}

// Diverging maps a value interval onto the red-yellow-blue palette with a
// reversed domain, so the domain maximum lands on the warm end and the
// minimum on the cool end.
type Diverging struct {
	warm, cool float64 // warm = domain max, cool = domain min
}

// NewDiverging builds a color scale over [min, max].
func NewDiverging(min, max float64) Diverging {
	return Diverging{warm: max, cool: min}
}

// Color returns the hex color for a value, clamped to the domain.
func (s Diverging) Color(v float64) string {
	t := 0.0
	if s.cool != s.warm {
		t = (v - s.warm) / (s.cool - s.warm) // 0 at the warm end
	}
	return interpolateRdYlBu(clamp01(t))
}

// GradientStop is one stop of the legend gradient, low values leftmost.
type GradientStop struct {
	Offset float64 // 0..1 across the legend
	Color  string
}

// GradientStops samples the scale across the value domain for the legend
// gradient. Count must be at least 2.
func (s Diverging) GradientStops(count int) []GradientStop {
	if count < 2 {
		count = 2
	}
	stops := make([]GradientStop, count)
	for i := range stops {
		frac := float64(i) / float64(count-1)
		value := s.cool + frac*(s.warm-s.cool)
		stops[i] = GradientStop{Offset: frac, Color: s.Color(value)}
	}
	return stops
}

// interpolateRdYlBu linearly interpolates the palette at t in [0, 1],
// t=0 being the warm end.
func interpolateRdYlBu(t float64) string {
	segments := float64(len(rdYlBu) - 1)
	pos := t * segments
	i := int(math.Floor(pos))
	if i >= len(rdYlBu)-1 {
		i = len(rdYlBu) - 2
	}
	f := pos - float64(i)

	a, b := rdYlBu[i], rdYlBu[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + f*(float64(y)-float64(x))))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(a[0], b[0]), mix(a[1], b[1]), mix(a[2], b[2]))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
