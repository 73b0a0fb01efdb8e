// Package domain models USGS earthquake events and their map presentation.
//
// # Data Source
//
// Events come from the USGS Earthquake Hazards Program summary feeds, e.g.
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson.
// The feed is a GeoJSON FeatureCollection regenerated every minute. The usgs
// adapter decodes it into [EarthquakeFeature] values; this package never
// performs I/O.
//
// # USGS Feed Conventions
//
// Coordinates:
//
//	[longitude, latitude, depth]  →  e.g. [-116.79, 33.49, 12.4]
//	Depth is the hypocenter depth in kilometers. Shallow events can report
//	small negative depths (above the WGS-84 ellipsoid).
//
// Time:
//
//	"time" is milliseconds since the Unix epoch, UTC.
//
// Magnitude:
//
//	"mag" is a unitless real number whose scale is given by "magType"
//	(ml, md, mb, mww, ...). It is usually in [-1, 10] and occasionally null
//	for events that have not been reviewed.
//
// # Marker Styling
//
// Marker color is keyed on depth and radius on magnitude. Depth bands are
// half-open intervals, so every real depth falls in exactly one band:
//
//	  [50, ∞)    #E31A1C
//	  [25, 50)   #FD8D3C
//	  [15, 25)   #FEB24C
//	  [5, 15)    #FFEDA0
//	  (-∞, 5)    #FFEDA0
//
//	  radius = magnitude × 4
//
// The two shallowest bands share a color. NaN depths compare false against
// every bound and take the shallowest color. See [ColorForDepth].
//
// All style functions are pure and total over float64, including NaN and ±Inf,
// and are safe for concurrent use.
package domain
