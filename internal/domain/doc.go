// Package domain models the two data sets the service visualizes: NASA
// GISTEMP global temperature anomalies and USGS earthquake observations.
//
// # Temperature data
//
// Anomalies come from the GISTEMP v4 Land-Ocean Temperature Index CSV,
// available at https://data.giss.nasa.gov/gistemp/. The file starts with a
// single title line, followed by a header row and one row per year:
//
//	Land-Ocean: Global Means
//	Year,Jan,Feb,...,Dec,J-D,D-N,DJF,...,SON
//	1880,-.19,-.25,...,-.17,-.17,***,***,...,-.20
//
// Only the Year and J-D (January-December annual mean) columns are used.
// Values are degrees Celsius relative to the 1951-1980 baseline. NASA marks
// years without a complete annual mean with the "***" sentinel; those rows
// are dropped during parsing, and remaining rows keep their source order.
//
// # Earthquake data
//
// Quakes come from the USGS FDSN event service
// (https://earthquake.usgs.gov/fdsnws/event/1/) in GeoJSON form. Feature
// properties carry the magnitude (may be null for unreviewed events), a
// human-readable place string, and the origin time in Unix milliseconds.
// Events with a null magnitude are dropped; the rest are sorted by origin
// time ascending because the feed returns newest-first.
package domain
