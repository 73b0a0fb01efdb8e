package domain

// Depth band colors, shallowest last.
const (
	ColorDeep         = "#E31A1C"
	ColorIntermediate = "#FD8D3C"
	ColorModerate     = "#FEB24C"
	ColorShallow      = "#FFEDA0"
)

// Fixed marker options shared by every feature.
const (
	StrokeWeight = 0.5
	Opacity      = 1.0
	FillOpacity  = 1.0

	radiusPerMagnitude = 4.0
)

// ColorForDepth maps a hypocenter depth in kilometers to a marker color.
// Bands are [50,∞), [25,50), [15,25), [5,15) and (-∞,5); the last two share
// ColorShallow. NaN falls through to ColorShallow.
func ColorForDepth(depthKm float64) string {
	switch {
	case depthKm >= 50:
		return ColorDeep
	case depthKm >= 25:
		return ColorIntermediate
	case depthKm >= 15:
		return ColorModerate
	case depthKm >= 5:
		return ColorShallow
	default:
		return ColorShallow
	}
}

// RadiusForMagnitude scales magnitude linearly to a marker radius in pixels.
// It does not clamp: negative magnitudes give negative radii.
func RadiusForMagnitude(magnitude float64) float64 {
	return magnitude * radiusPerMagnitude
}

// StyleForFeature composes the depth color and magnitude radius with the
// fixed stroke and opacity options.
func StyleForFeature(magnitude, depthKm float64) MarkerStyle {
	color := ColorForDepth(depthKm)
	return MarkerStyle{
		Radius:       RadiusForMagnitude(magnitude),
		Color:        color,
		FillColor:    color,
		StrokeWeight: StrokeWeight,
		Opacity:      Opacity,
		FillOpacity:  FillOpacity,
		Stroke:       true,
	}
}

// StyleFeature styles a feature and renders its popup.
func StyleFeature(f EarthquakeFeature) StyledFeature {
	return StyledFeature{
		Feature:     f,
		Style:       StyleForFeature(f.Magnitude, f.DepthKm),
		Popup:       PopupHTML(f, ""),
		ProcessedAt: clock.Now().UTC(),
	}
}
