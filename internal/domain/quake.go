package domain

import (
	"context"
	"sort"
	"time"
)

// Geo is a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`
}

// Quake is one earthquake observation from the USGS feed.
type Quake struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	Magnitude float64   `json:"magnitude"`
	Place     string    `json:"place,omitempty"`
	Geo       Geo       `json:"geo,omitempty"`
	Depth     float64   `json:"depth,omitempty"` // kilometers
}

// QuakeFetcher retrieves quakes whose origin time falls in [start, end) with
// magnitude at least minMag.
type QuakeFetcher interface {
	Window(ctx context.Context, start, end time.Time, minMag float64) ([]Quake, error)
}

// SortQuakesByTime orders quakes by origin time ascending, in place.
// The USGS feed returns newest-first.
func SortQuakesByTime(quakes []Quake) {
	sort.SliceStable(quakes, func(i, j int) bool {
		return quakes[i].Time.Before(quakes[j].Time)
	})
}

// FilterQuakes returns the quakes with magnitude >= minMag, preserving order.
func FilterQuakes(quakes []Quake, minMag float64) []Quake {
	if minMag <= 0 {
		return quakes
	}
	kept := make([]Quake, 0, len(quakes))
	for _, q := range quakes {
		if q.Magnitude >= minMag {
			kept = append(kept, q)
		}
	}
	return kept
}
