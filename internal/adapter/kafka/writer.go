package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// Writer publishes styled earthquakes to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic. Messages are
// keyed by USGS event id and hash-balanced, so revisions of one event stay
// ordered on a single partition.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// LoadBatch serializes and publishes the styled features in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, features []domain.StyledFeature) error {
	if len(features) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(features))
	for i := range features {
		msg, err := serializeToMessage(features[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish styled features: %w", err)
	}
	w.metrics.FeaturesPublished.Add(float64(len(msgs)))
	w.logger.Debug("published styled features", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a StyledFeature into a Kafka message.
func serializeToMessage(sf domain.StyledFeature) (kafkago.Message, error) {
	data, err := json.Marshal(sf)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize styled feature %s: %w", sf.Feature.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(sf.Feature.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "depth_color", Value: []byte(sf.Style.Color)},
			{Key: "processed_at", Value: []byte(sf.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
