package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	sf := domain.StyledFeature{
		Feature:     domain.EarthquakeFeature{ID: "us7000m9g4", Magnitude: 6.5, DepthKm: 60},
		Style:       domain.StyleForFeature(6.5, 60),
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(sf)
	require.NoError(t, err)

	assert.Equal(t, []byte("us7000m9g4"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "depth_color", msg.Headers[0].Key)
	assert.Equal(t, []byte("#E31A1C"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var decoded domain.StyledFeature
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, sf.Feature, decoded.Feature)
	assert.Equal(t, sf.Style, decoded.Style)
}

func TestSerializeToMessage_NaN(t *testing.T) {
	sf := domain.StyledFeature{Feature: domain.EarthquakeFeature{ID: "bad", Magnitude: math.NaN()}}

	_, err := serializeToMessage(sf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestWriter_LoadBatchEmpty(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9"}, KafkaTopic: "unused"}
	w := NewWriter(cfg, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.LoadBatch(context.Background(), nil))
}
