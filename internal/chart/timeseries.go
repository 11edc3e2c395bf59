package chart

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// TimePoint is one (time, value) sample of a generic series.
type TimePoint struct {
	T time.Time
	V float64
}

// LineChart renders a time-series line with point markers, used for the
// earthquake monitor view. The drawing is delegated to go-chart; only the
// axis bounds and tick labels are computed here so they match the anomaly
// chart's formatting.
type LineChart struct {
	Width, Height int
	Title         string
	YLabel        string
}

// NewLineChart returns a line chart sized to match the anomaly canvas width.
func NewLineChart(title, yLabel string) *LineChart {
	return &LineChart{Width: 920, Height: 480, Title: title, YLabel: yLabel}
}

var lineSeriesColor = drawing.Color{R: 0x45, G: 0x75, B: 0xb4, A: 0xff}

// Render draws the points in time order and returns the SVG document. An
// empty series produces a placeholder with a "no data" annotation rather
// than an error.
func (c *LineChart) Render(points []TimePoint) (string, error) {
	if len(points) == 0 {
		return c.renderEmpty(), nil
	}

	times := make([]time.Time, len(points))
	values := make([]float64, len(points))
	minV, maxV := points[0].V, points[0].V
	for i, p := range points {
		times[i] = p.T
		values[i] = p.V
		if p.V < minV {
			minV = p.V
		}
		if p.V > maxV {
			maxV = p.V
		}
	}
	// go-chart needs at least two x values.
	if len(times) == 1 {
		times = append(times, times[0].Add(time.Second))
		values = append(values, values[0])
	}

	y := NewLinear(minV, maxV, 0, 1).Nice(yTickCount)
	lo, hi := y.Domain()
	ticks := make([]gochart.Tick, 0, yTickCount+1)
	for _, v := range y.Ticks(yTickCount) {
		ticks = append(ticks, gochart.Tick{Value: v, Label: formatAnomaly(v)})
	}

	style := gochart.Style{
		StrokeColor: lineSeriesColor,
		StrokeWidth: 1.5,
		DotColor:    lineSeriesColor,
		DotWidth:    3,
	}

	ch := gochart.Chart{
		Title:  escapeText(c.Title),
		Width:  c.Width,
		Height: c.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 30},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("Jan 02 15:04"),
		},
		YAxis: gochart.YAxis{
			Name:  escapeText(c.YLabel),
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
			Ticks: ticks,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{XValues: times, YValues: values, Style: style},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render time series: %w", err)
	}
	return buf.String(), nil
}

// renderEmpty draws the annotation document go-chart cannot: it refuses to
// render a chart with no series data.
func (c *LineChart) renderEmpty() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="sans-serif" font-size="11">`+"\n",
		c.Width, c.Height)
	if c.Title != "" {
		fmt.Fprintf(&b, `<text x="%d" y="24" text-anchor="middle" font-size="16" fill="#222">%s</text>`+"\n",
			c.Width/2, escapeText(c.Title))
	}
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-size="14" fill="#666">No data available</text>`+"\n",
		c.Width/2, c.Height/2)
	b.WriteString("</svg>\n")
	return b.String()
}
