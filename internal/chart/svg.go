package chart

import (
	"fmt"
	"strconv"
	"strings"
)

const axisColor = "#444"

// px formats a pixel coordinate with two decimals, enough for sub-pixel
// placement without floating-point noise in the output.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func escapeText(s string) string {
	return xmlReplacer.Replace(s)
}

var xmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// writeBottomAxis draws a horizontal axis at the given y offset in plot
// coordinates: domain line, tick marks, and labels below.
func writeBottomAxis(b *strings.Builder, s Linear, y float64, ticks []float64, format func(float64) string) {
	r0, r1 := s.Range()
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		px(r0), px(y), px(r1), px(y), axisColor)
	for _, t := range ticks {
		x := s.Apply(t)
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			px(x), px(y), px(x), px(y+6), axisColor)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="middle" fill="%s">%s</text>`+"\n",
			px(x), px(y+20), axisColor, escapeText(format(t)))
	}
}

// writeLeftAxis draws a vertical axis at the given x offset in plot
// coordinates: domain line, tick marks, and labels to the left.
func writeLeftAxis(b *strings.Builder, s Linear, x float64, ticks []float64, format func(float64) string) {
	r0, r1 := s.Range()
	fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		px(x), px(r0), px(x), px(r1), axisColor)
	for _, t := range ticks {
		y := s.Apply(t)
		fmt.Fprintf(b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			px(x-6), px(y), px(x), px(y), axisColor)
		fmt.Fprintf(b, `<text x="%s" y="%s" text-anchor="end" dominant-baseline="middle" fill="%s">%s</text>`+"\n",
			px(x-9), px(y), axisColor, escapeText(format(t)))
	}
}

type pathPoint struct {
	X, Y float64
}

// smoothPath renders a Catmull-Rom spline through the points as cubic Bézier
// segments. Fewer than three points degrade to a straight line.
func smoothPath(points []pathPoint) string {
	if len(points) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", px(points[0].X), px(points[0].Y))
	if len(points) == 1 {
		return b.String()
	}
	if len(points) == 2 {
		fmt.Fprintf(&b, "L%s,%s", px(points[1].X), px(points[1].Y))
		return b.String()
	}

	// Standard Catmull-Rom to Bézier conversion with duplicated endpoints.
	for i := 0; i < len(points)-1; i++ {
		p0 := points[maxInt(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[minInt(i+2, len(points)-1)]

		c1 := pathPoint{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := pathPoint{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}
		fmt.Fprintf(&b, "C%s,%s %s,%s %s,%s",
			px(c1.X), px(c1.Y), px(c2.X), px(c2.Y), px(p2.X), px(p2.Y))
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
