package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// ErrNonFinite marks a feature whose magnitude or depth is NaN or infinite.
var ErrNonFinite = errors.New("non-finite magnitude or depth")

// QuakeTransformer implements Transformer using the domain style functions
// with optional geocoding enrichment.
type QuakeTransformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a QuakeTransformer. Pass a nil geocoder to disable
// geocoding enrichment.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger) *QuakeTransformer {
	return &QuakeTransformer{
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *QuakeTransformer) Transform(ctx context.Context, f domain.EarthquakeFeature) (domain.StyledFeature, error) {
	if !finite(f.Magnitude) || !finite(f.DepthKm) {
		return domain.StyledFeature{}, fmt.Errorf("feature %s: %w", f.ID, ErrNonFinite)
	}

	sf := domain.StyleFeature(f)
	sf = domain.EnrichWithGeocoding(ctx, sf, t.geocoder, t.logger)
	return sf, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
