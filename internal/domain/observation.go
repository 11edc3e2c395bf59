package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	yearColumn  = "Year"
	valueColumn = "J-D"
)

// ErrEmptySeries is returned when a dataset contains no usable observations.
var ErrEmptySeries = errors.New("series contains no observations")

// Observation is one (year, annual anomaly) point from the source table.
type Observation struct {
	Year    int     `json:"year"`
	Anomaly float64 `json:"anomaly"`
}

// Series is an ordered sequence of observations plus load metadata.
type Series struct {
	Observations []Observation `json:"observations"`
	Source       string        `json:"source,omitempty"`
	LoadedAt     time.Time     `json:"loaded_at"`
}

// Len reports the number of observations in the series.
func (s Series) Len() int { return len(s.Observations) }

// ParseGISTEMP reads a GISTEMP-style anomaly CSV and returns the observations
// in source order. The first line is the dataset title and is skipped, unless
// it already is the header row. A row is kept if and only if its annual-value
// column parses as a finite number; rows with an unparseable year are treated
// as metadata and skipped likewise.
func ParseGISTEMP(r io.Reader) ([]Observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // title and data rows have different widths
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	header := first
	if !isHeaderRow(first) {
		header, err = reader.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
	}

	yearIdx, valueIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case yearColumn:
			yearIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	if yearIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("header missing %q or %q column", yearColumn, valueColumn)
	}

	var obs []Observation
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if yearIdx >= len(row) || valueIdx >= len(row) {
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueIdx]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			continue // "***" sentinel, blank, or otherwise non-finite
		}

		obs = append(obs, Observation{Year: year, Anomaly: value})
	}

	if len(obs) == 0 {
		return nil, ErrEmptySeries
	}
	return obs, nil
}

func isHeaderRow(row []string) bool {
	return len(row) > 1 && strings.TrimSpace(row[0]) == yearColumn
}

// NewSeries stamps a parsed observation sequence with its source and load time.
func NewSeries(obs []Observation, source string) Series {
	return Series{
		Observations: obs,
		Source:       source,
		LoadedAt:     clock.Now().UTC(),
	}
}
