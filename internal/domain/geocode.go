package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding reverse geocodes the event's epicenter and adds the
// region to the popup. If geocoder is nil the feature is returned untouched;
// on failure GeoSource is set to "failed" and the USGS place is kept.
func EnrichWithGeocoding(ctx context.Context, sf StyledFeature, geocoder Geocoder, logger *slog.Logger) StyledFeature {
	if geocoder == nil {
		return sf
	}

	f := sf.Feature
	result, err := geocoder.ReverseGeocode(ctx, f.Lat, f.Lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"event_id", f.ID,
			"lat", f.Lat,
			"lon", f.Lon,
			"error", err,
		)
		sf.GeoSource = "failed"
		return sf
	}
	if result.FormattedAddress == "" {
		sf.GeoSource = "original"
		return sf
	}

	sf.Region = result.FormattedAddress
	sf.GeoConfidence = result.Confidence
	sf.GeoSource = "reverse"
	sf.Popup = PopupHTML(f, sf.Region)
	return sf
}
