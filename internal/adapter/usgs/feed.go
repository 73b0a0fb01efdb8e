package usgs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// Feed is a decoded USGS summary feed.
type Feed struct {
	Title       string
	GeneratedAt time.Time
	Features    []domain.EarthquakeFeature
	Skipped     int // records dropped for null magnitude or bad geometry
}

// ParseFeed decodes a USGS GeoJSON summary feed. Records that are not points,
// carry fewer than three coordinates, or have a null magnitude are skipped and
// counted; malformed JSON is an error.
func ParseFeed(data []byte) (Feed, error) {
	var resp featureCollection
	if err := json.Unmarshal(data, &resp); err != nil {
		return Feed{}, fmt.Errorf("decode usgs feed: %w", err)
	}
	if resp.Type != "FeatureCollection" {
		return Feed{}, fmt.Errorf("decode usgs feed: unexpected type %q", resp.Type)
	}

	feed := Feed{
		Title:    resp.Metadata.Title,
		Features: make([]domain.EarthquakeFeature, 0, len(resp.Features)),
	}
	if resp.Metadata.Generated > 0 {
		feed.GeneratedAt = time.UnixMilli(resp.Metadata.Generated).UTC()
	}

	for _, f := range resp.Features {
		ef, ok := f.toDomain()
		if !ok {
			feed.Skipped++
			continue
		}
		feed.Features = append(feed.Features, ef)
	}
	return feed, nil
}

func (f feature) toDomain() (domain.EarthquakeFeature, bool) {
	if f.Geometry.Type != "Point" || f.Properties.Mag == nil {
		return domain.EarthquakeFeature{}, false
	}
	var c []float64
	if err := json.Unmarshal(f.Geometry.Coordinates, &c); err != nil || len(c) < 3 {
		return domain.EarthquakeFeature{}, false
	}
	return domain.EarthquakeFeature{
		ID:          f.ID,
		Magnitude:   *f.Properties.Mag,
		DepthKm:     c[2],
		Place:       f.Properties.Place,
		TimestampMs: f.Properties.Time,
		Lon:         c[0],
		Lat:         c[1],
		URL:         f.Properties.URL,
	}, true
}

// USGS GeoJSON summary format types.

type featureCollection struct {
	Type     string    `json:"type"`
	Metadata metadata  `json:"metadata"`
	Features []feature `json:"features"`
}

type metadata struct {
	Generated int64  `json:"generated"` // epoch ms
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  int64    `json:"time"` // epoch ms
	URL   string   `json:"url"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"` // Point: [lon, lat, depth km]
}
