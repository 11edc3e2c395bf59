package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quietriver/climate-charts/internal/domain"
)

const (
	barPadding     = 1.0 // pixel gap between adjacent bars
	legendWidth    = 300.0
	legendHeight   = 12.0
	gradientStops  = 10
	xTickSpacing   = 80.0 // target pixels between x-axis ticks
	yTickCount     = 10
	legendTickSpan = 5
)

// AnomalyChart renders the global temperature anomaly bar/line chart:
// one bar per year colored by a diverging scale, a running-mean trend line,
// a dashed zero baseline, axes, and a gradient legend.
type AnomalyChart struct {
	Dims      Dimensions
	Title     string
	Smoothing int // running-mean radius
}

// NewAnomalyChart returns a chart with the default canvas and smoothing.
func NewAnomalyChart(dims Dimensions) *AnomalyChart {
	return &AnomalyChart{
		Dims:      dims,
		Title:     "Global Temperature Anomalies",
		Smoothing: domain.DefaultSmoothingRadius,
	}
}

// XScale returns the base x-scale: years padded by half a unit on each side
// so bars center on integer years, mapped onto the plot width.
func (c *AnomalyChart) XScale(obs []domain.Observation) Linear {
	minYear, maxYear := yearExtent(obs)
	return NewLinear(float64(minYear)-0.5, float64(maxYear)+0.5, 0, c.Dims.PlotWidth())
}

// MaxZoom returns the upper scale-factor bound: the year range divided by
// ten, so a fully zoomed-in view still spans about a decade.
func (c *AnomalyChart) MaxZoom(obs []domain.Observation) float64 {
	minYear, maxYear := yearExtent(obs)
	return math.Max(1, float64(maxYear-minYear)/10)
}

// Render draws the observations with the zoom transform applied to the
// x-axis and returns the SVG document. The transform is clamped to
// [1, MaxZoom] and to the plot's pixel extent before use.
func (c *AnomalyChart) Render(obs []domain.Observation, tr Transform) (string, error) {
	if len(obs) == 0 {
		return "", domain.ErrEmptySeries
	}

	plotW, plotH := c.Dims.PlotWidth(), c.Dims.PlotHeight()

	x := c.XScale(obs)
	tr = tr.Clamp(1, c.MaxZoom(obs), plotW)
	xz := tr.Rescale(x)

	minVal, maxVal := valueExtent(obs)
	y := NewLinear(minVal, maxVal, plotH, 0).Nice(yTickCount)
	colors := NewDiverging(minVal, maxVal)

	barW := math.Max(xz.Step()-barPadding, 0)
	zeroY := y.Apply(0)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="sans-serif" font-size="11">`+"\n",
		px(c.Dims.Width), px(c.Dims.Height), px(c.Dims.Width), px(c.Dims.Height))

	// Clip region keeps zoomed content inside the plot bounds; gradient
	// feeds the legend.
	b.WriteString("<defs>\n")
	fmt.Fprintf(&b, `<clipPath id="plot-clip"><rect x="0" y="0" width="%s" height="%s"/></clipPath>`+"\n", px(plotW), px(plotH))
	b.WriteString(`<linearGradient id="anomaly-gradient" x1="0" y1="0" x2="1" y2="0">` + "\n")
	for _, stop := range colors.GradientStops(gradientStops) {
		fmt.Fprintf(&b, `<stop offset="%s%%" stop-color="%s"/>`+"\n", px(stop.Offset*100), stop.Color)
	}
	b.WriteString("</linearGradient>\n</defs>\n")

	if c.Title != "" {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" font-size="16" fill="#222">%s</text>`+"\n",
			px(c.Dims.Width/2), px(c.Dims.Margin.Top-16), escapeText(c.Title))
	}

	fmt.Fprintf(&b, `<g transform="translate(%s,%s)">`+"\n", px(c.Dims.Margin.Left), px(c.Dims.Margin.Top))
	b.WriteString(`<g clip-path="url(#plot-clip)">` + "\n")

	// Bars: left edge at year-0.5 so consecutive bars share the one-pixel gap.
	for _, o := range obs {
		barX := xz.Apply(float64(o.Year) - 0.5)
		top := math.Min(y.Apply(o.Anomaly), zeroY)
		height := math.Abs(y.Apply(o.Anomaly) - zeroY)
		fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			px(barX), px(top), px(barW), px(height), colors.Color(o.Anomaly))
	}

	// Zero-anomaly baseline.
	fmt.Fprintf(&b, `<line x1="0" y1="%s" x2="%s" y2="%s" stroke="#333" stroke-dasharray="4,4"/>`+"\n",
		px(zeroY), px(plotW), px(zeroY))

	// Running-mean trend, offset half a bar so it passes through bar centers.
	smooth := domain.RunningMean(obs, c.Smoothing)
	points := make([]pathPoint, len(smooth))
	for i, p := range smooth {
		points[i] = pathPoint{
			X: xz.Apply(float64(p.Year)-0.5) + barW/2,
			Y: y.Apply(p.Mean),
		}
	}
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="#222" stroke-width="2"/>`+"\n", smoothPath(points))

	b.WriteString("</g>\n")

	writeBottomAxis(&b, xz, plotH, integerTicks(xz, int(plotW/xTickSpacing)), formatYear)
	writeLeftAxis(&b, y, 0, y.Ticks(yTickCount), formatAnomaly)
	b.WriteString("</g>\n")

	c.writeLegend(&b, minVal, maxVal)

	b.WriteString("</svg>\n")
	return b.String(), nil
}

// writeLegend draws the horizontal gradient legend with its own axis and a
// centered title, below the x-axis.
func (c *AnomalyChart) writeLegend(b *strings.Builder, minVal, maxVal float64) {
	legendW := math.Min(legendWidth, c.Dims.PlotWidth())
	legendX := c.Dims.Margin.Left + (c.Dims.PlotWidth()-legendW)/2
	legendY := c.Dims.Height - c.Dims.Margin.Bottom + 60

	fmt.Fprintf(b, `<g transform="translate(%s,%s)">`+"\n", px(legendX), px(legendY))
	fmt.Fprintf(b, `<text x="%s" y="-8" text-anchor="middle" fill="#222">%s</text>`+"\n",
		px(legendW/2), escapeText("Temperature anomaly (°C)"))
	fmt.Fprintf(b, `<rect x="0" y="0" width="%s" height="%s" fill="url(#anomaly-gradient)"/>`+"\n",
		px(legendW), px(legendHeight))

	legendScale := NewLinear(minVal, maxVal, 0, legendW)
	writeBottomAxis(b, legendScale, legendHeight, legendScale.Ticks(legendTickSpan), formatAnomaly)
	b.WriteString("</g>\n")
}

// integerTicks filters the scale's ticks down to whole years.
func integerTicks(s Linear, count int) []float64 {
	all := s.Ticks(count)
	ticks := all[:0]
	for _, t := range all {
		if t == math.Trunc(t) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func formatYear(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

func formatAnomaly(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func yearExtent(obs []domain.Observation) (int, int) {
	minYear, maxYear := obs[0].Year, obs[0].Year
	for _, o := range obs[1:] {
		if o.Year < minYear {
			minYear = o.Year
		}
		if o.Year > maxYear {
			maxYear = o.Year
		}
	}
	return minYear, maxYear
}

func valueExtent(obs []domain.Observation) (float64, float64) {
	minVal, maxVal := obs[0].Anomaly, obs[0].Anomaly
	for _, o := range obs[1:] {
		if o.Anomaly < minVal {
			minVal = o.Anomaly
		}
		if o.Anomaly > maxVal {
			maxVal = o.Anomaly
		}
	}
	return minVal, maxVal
}
