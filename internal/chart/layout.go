package chart

// Margin is the space reserved around the plot area for axes, titles, and
// the legend.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Dimensions describe the chart canvas. The plot area is the canvas minus
// the margins; all data marks are clipped to it.
type Dimensions struct {
	Width, Height float64
	Margin        Margin
}

// DefaultDimensions returns the canvas used by the anomaly chart. The large
// bottom margin leaves room for the x-axis and the gradient legend.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:  920,
		Height: 540,
		Margin: Margin{Top: 40, Right: 30, Bottom: 120, Left: 60},
	}
}

// PlotWidth returns the drawable width inside the margins.
func (d Dimensions) PlotWidth() float64 { return d.Width - d.Margin.Left - d.Margin.Right }

// PlotHeight returns the drawable height inside the margins.
func (d Dimensions) PlotHeight() float64 { return d.Height - d.Margin.Top - d.Margin.Bottom }
