package chart

import "math"

// Linear is an affine mapping from a numeric domain onto a numeric range,
// fixed at construction.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Apply maps a domain value to its range position. A degenerate single-point
// domain maps everything to the range midpoint.
func (s Linear) Apply(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// Invert maps a range position back to its domain value.
func (s Linear) Invert(p float64) float64 {
	if s.r1 == s.r0 {
		return (s.d0 + s.d1) / 2
	}
	return s.d0 + (p-s.r0)/(s.r1-s.r0)*(s.d1-s.d0)
}

// Domain returns the scale's domain endpoints.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the scale's range endpoints.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Step returns the range distance covered by one domain unit.
func (s Linear) Step() float64 {
	return s.Apply(s.d0+1) - s.Apply(s.d0)
}

// Nice returns a copy of the scale with the domain expanded outward to round
// multiples of the tick step for roughly count ticks. A degenerate
// single-point domain is widened by half a unit each side first so the axis
// still has extent.
func (s Linear) Nice(count int) Linear {
	lo, hi := math.Min(s.d0, s.d1), math.Max(s.d0, s.d1)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	step := tickStep(lo, hi, count)
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step

	out := s
	if s.d0 <= s.d1 {
		out.d0, out.d1 = lo, hi
	} else {
		out.d0, out.d1 = hi, lo
	}
	return out
}

// Ticks returns roughly count round values covering the domain, ascending.
func (s Linear) Ticks(count int) []float64 {
	lo, hi := math.Min(s.d0, s.d1), math.Max(s.d0, s.d1)
	if lo == hi {
		return []float64{lo}
	}

	step := tickStep(lo, hi, count)
	i0 := int(math.Ceil(lo / step))
	i1 := int(math.Floor(hi / step))
	if i1 < i0 {
		return nil
	}

	ticks := make([]float64, 0, i1-i0+1)
	for i := i0; i <= i1; i++ {
		ticks = append(ticks, float64(i)*step)
	}
	return ticks
}

// tickStep picks a round step (a power of ten times 1, 2, or 5) that splits
// [start, stop] into about count intervals.
func tickStep(start, stop float64, count int) float64 {
	if count < 1 {
		count = 1
	}
	raw := (stop - start) / float64(count)
	power := math.Floor(math.Log10(raw))
	err := raw / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= math.Sqrt(50):
		factor = 10
	case err >= math.Sqrt(10):
		factor = 5
	case err >= math.Sqrt(2):
		factor = 2
	}
	return factor * math.Pow(10, power)
}
