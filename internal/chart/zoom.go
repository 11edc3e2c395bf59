package chart

// Transform is a one-dimensional zoom/pan applied to the x-axis, using the
// k/t convention of interactive charting libraries: pixel' = K*pixel + TX.
// It carries no state of its own; rendering recomputes everything from the
// base scale, so applying the same transform twice yields the same output.
type Transform struct {
	K  float64 `json:"k"`
	TX float64 `json:"tx"`
}

// Identity is the no-op transform.
var Identity = Transform{K: 1}

// Clamp bounds the scale factor to [minK, maxK] and the translation so the
// transformed plot still covers the pixel extent [0, width]: content can be
// panned across the plot but never out of it.
func (t Transform) Clamp(minK, maxK, width float64) Transform {
	if t.K < minK {
		t.K = minK
	}
	if t.K > maxK {
		t.K = maxK
	}

	// K*0+TX <= 0 and K*width+TX >= width.
	lo := width * (1 - t.K)
	if t.TX < lo {
		t.TX = lo
	}
	if t.TX > 0 {
		t.TX = 0
	}
	return t
}

// Rescale returns a copy of s whose domain is the window visible under the
// transform; the range is unchanged.
func (t Transform) Rescale(s Linear) Linear {
	r0, r1 := s.Range()
	d0 := s.Invert((r0 - t.TX) / t.K)
	d1 := s.Invert((r1 - t.TX) / t.K)
	return NewLinear(d0, d1, r0, r1)
}
