// Package chart renders SVG charts server-side: linear and diverging-color
// scales, a one-dimensional zoom/pan transform, the temperature anomaly
// bar/line chart, and a generic time-series line chart.
//
// Scales are immutable value types fixed at construction. Zoom is a pure
// transform applied to the base x-scale on every render, so rendering the
// same data with the same transform always produces the same document.
package chart
