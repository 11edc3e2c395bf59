package domain

// Stats summarizes a series for the stats endpoint and the validate command.
type Stats struct {
	Count       int     `json:"count"`
	MinYear     int     `json:"min_year"`
	MaxYear     int     `json:"max_year"`
	MinAnomaly  float64 `json:"min_anomaly"`
	MaxAnomaly  float64 `json:"max_anomaly"`
	MeanAnomaly float64 `json:"mean_anomaly"`
	WarmestYear int     `json:"warmest_year"`
	ColdestYear int     `json:"coldest_year"`
}

// ComputeStats derives summary statistics over the observations.
// Returns the zero value for an empty input.
func ComputeStats(obs []Observation) Stats {
	if len(obs) == 0 {
		return Stats{}
	}

	s := Stats{
		Count:       len(obs),
		MinYear:     obs[0].Year,
		MaxYear:     obs[0].Year,
		MinAnomaly:  obs[0].Anomaly,
		MaxAnomaly:  obs[0].Anomaly,
		WarmestYear: obs[0].Year,
		ColdestYear: obs[0].Year,
	}

	sum := 0.0
	for _, o := range obs {
		sum += o.Anomaly
		if o.Year < s.MinYear {
			s.MinYear = o.Year
		}
		if o.Year > s.MaxYear {
			s.MaxYear = o.Year
		}
		if o.Anomaly > s.MaxAnomaly {
			s.MaxAnomaly = o.Anomaly
			s.WarmestYear = o.Year
		}
		if o.Anomaly < s.MinAnomaly {
			s.MinAnomaly = o.Anomaly
			s.ColdestYear = o.Year
		}
	}
	s.MeanAnomaly = sum / float64(len(obs))
	return s
}
