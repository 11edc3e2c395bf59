// Command render produces a chart SVG from a local anomaly CSV, for offline
// use and for regenerating documentation images.
//
// Usage:
//
//	go run ./cmd/render -input data/GLB.Ts+dSST.csv -out anomalies.svg
//	go run ./cmd/render -input data/GLB.Ts+dSST.csv -k 4 -tx -1200 -out zoomed.svg
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/quietriver/climate-charts/internal/adapter/giss"
	"github.com/quietriver/climate-charts/internal/chart"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("input", "", "path to the anomaly CSV")
	out := flag.String("out", "anomalies.svg", "output SVG path")
	k := flag.Float64("k", 1, "zoom scale factor (clamped)")
	tx := flag.Float64("tx", 0, "zoom x-translation in pixels (clamped)")
	width := flag.Float64("width", 0, "canvas width override")
	height := flag.Float64("height", 0, "canvas height override")
	smooth := flag.Int("smooth", -1, "running-mean radius override")
	title := flag.String("title", "", "chart title override")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -input")
	}

	series, err := giss.FileSource{Path: *input}.Fetch(context.Background())
	if err != nil {
		return err
	}
	log.Printf("loaded %d observations from %s", series.Len(), *input)

	dims := chart.DefaultDimensions()
	if *width > 0 {
		dims.Width = *width
	}
	if *height > 0 {
		dims.Height = *height
	}

	c := chart.NewAnomalyChart(dims)
	if *smooth >= 0 {
		c.Smoothing = *smooth
	}
	if *title != "" {
		c.Title = *title
	}

	svg, err := c.Render(series.Observations, chart.Transform{K: *k, TX: *tx})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := os.WriteFile(*out, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("wrote %s (%d bytes)", *out, len(svg))
	return nil
}
