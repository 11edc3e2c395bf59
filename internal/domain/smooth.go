package domain

// SmoothPoint is one point of the centered running mean.
type SmoothPoint struct {
	Year int     `json:"year"`
	Mean float64 `json:"mean"`
}

// DefaultSmoothingRadius gives the 5-point window (two neighbors each side)
// used by the anomaly chart's trend line.
const DefaultSmoothingRadius = 2

// RunningMean computes a centered moving average over a window of
// 2*radius+1 observations, clipping the window at the sequence boundaries.
// The result always has exactly one point per observation.
func RunningMean(obs []Observation, radius int) []SmoothPoint {
	if radius < 0 {
		radius = 0
	}
	points := make([]SmoothPoint, len(obs))
	for i := range obs {
		lo := i - radius
		if lo < 0 {
			lo = 0
		}
		hi := i + radius
		if hi > len(obs)-1 {
			hi = len(obs) - 1
		}

		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += obs[j].Anomaly
		}
		points[i] = SmoothPoint{
			Year: obs[i].Year,
			Mean: sum / float64(hi-lo+1),
		}
	}
	return points
}
