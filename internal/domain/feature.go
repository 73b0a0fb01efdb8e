package domain

import "time"

// EarthquakeFeature is a read-only view of one event from the USGS feed.
type EarthquakeFeature struct {
	ID          string  `json:"id"`
	Magnitude   float64 `json:"mag"`
	DepthKm     float64 `json:"depth_km"`
	Place       string  `json:"place"`
	TimestampMs int64   `json:"time"`
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	URL         string  `json:"url,omitempty"`
}

// Time returns the event origin time in UTC.
func (f EarthquakeFeature) Time() time.Time {
	return time.UnixMilli(f.TimestampMs).UTC()
}

// MarkerStyle holds the circle-marker path options for one feature. Field
// names follow Leaflet's path options so the value can be handed to the map
// unchanged.
type MarkerStyle struct {
	Radius       float64 `json:"radius"`
	Color        string  `json:"color"`
	FillColor    string  `json:"fillColor"`
	StrokeWeight float64 `json:"weight"`
	Opacity      float64 `json:"opacity"`
	FillOpacity  float64 `json:"fillOpacity"`
	Stroke       bool    `json:"stroke"`
}

// StyledFeature is a feature paired with everything the map needs to draw it.
type StyledFeature struct {
	Feature EarthquakeFeature `json:"feature"`
	Style   MarkerStyle       `json:"style"`
	Popup   string            `json:"popup"`

	// Reverse-geocoding enrichment fields.
	Region        string  `json:"region,omitempty"`
	GeoConfidence float64 `json:"geo_confidence,omitempty"`
	GeoSource     string  `json:"geo_source,omitempty"` // "reverse", "original", "failed"

	ProcessedAt time.Time `json:"processed_at"`
}
