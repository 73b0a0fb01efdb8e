package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// ClampStyle zeroes a negative radius. Negative magnitudes are legal in the
// feed but cannot be drawn.
func ClampStyle(s domain.MarkerStyle) domain.MarkerStyle {
	if s.Radius < 0 {
		s.Radius = 0
	}
	return s
}

// Filter returns the features with magnitude ≥ minMagnitude, preserving order.
func Filter(features []domain.StyledFeature, minMagnitude float64) []domain.StyledFeature {
	out := make([]domain.StyledFeature, 0, len(features))
	for _, f := range features {
		if f.Feature.Magnitude >= minMagnitude {
			out = append(out, f)
		}
	}
	return out
}

// FeatureCollection renders styled features as GeoJSON points with their style
// and popup in the properties. The collection bbox covers every point.
func FeatureCollection(features []domain.StyledFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(features) == 0 {
		return fc
	}

	var bound orb.Bound
	for i, sf := range features {
		q := sf.Feature
		pt := orb.Point{q.Lon, q.Lat}
		if i == 0 {
			bound = pt.Bound()
		} else {
			bound = bound.Extend(pt)
		}

		f := geojson.NewFeature(pt)
		f.ID = q.ID
		f.Properties["id"] = q.ID
		f.Properties["place"] = q.Place
		f.Properties["mag"] = q.Magnitude
		f.Properties["depth"] = q.DepthKm
		f.Properties["time"] = q.TimestampMs
		f.Properties["url"] = q.URL
		f.Properties["popup"] = sf.Popup
		f.Properties["style"] = ClampStyle(sf.Style)
		if sf.Region != "" {
			f.Properties["region"] = sf.Region
		}
		fc.Append(f)
	}
	fc.BBox = geojson.NewBBox(bound)
	return fc
}
