//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/couchcryptid/quake-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map-service/internal/adapter/memory"
	"github.com/couchcryptid/quake-map-service/internal/adapter/usgs"
	"github.com/couchcryptid/quake-map-service/internal/config"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/pipeline"
)

const (
	testTopic   = "test-styled-earthquakes"
	feedFixture = "../adapter/usgs/testdata/feed.geojson"
)

// publishedMessage holds a deserialized message read from the styled topic.
type publishedMessage struct {
	Feature domain.StyledFeature
	Key     string
	Headers map[string]string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("quake-map-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// serveFeed stands in for the USGS summary endpoint.
func serveFeed(t *testing.T) *httptest.Server {
	t.Helper()
	data, err := os.ReadFile(feedFixture)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// readPublished reads a single message from the consumer and deserializes it.
func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from styled topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var sf domain.StyledFeature
	require.NoError(t, json.Unmarshal(msg.Value, &sf), "unmarshal styled feature")

	return publishedMessage{Feature: sf, Key: string(msg.Key), Headers: headers}
}

// TestRefreshPublishesStyledFeatures wires the full pipeline (USGS client,
// transformer, memory store and Kafka writer) and checks that one refresh
// lands the styled features in both sinks.
func TestRefreshPublishesStyledFeatures(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)
	feed := serveFeed(t)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 16, 0, 0, 0, time.UTC))

	writer := kafka.NewWriter(cfg, metrics, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	store := memory.NewStore(clock, metrics)

	p := pipeline.New(
		usgs.NewClient(feed.URL, 10*time.Second, metrics, discardLogger()),
		pipeline.NewTransformer(nil, discardLogger()),
		pipeline.MultiLoader{store, writer},
		discardLogger(), metrics, clock, 5*time.Minute,
	)

	require.True(t, p.Refresh(ctx))
	require.NoError(t, p.CheckReadiness(ctx))

	snap := store.Snapshot()
	require.Len(t, snap.Features, 3)
	assert.Equal(t, clock.Now(), snap.UpdatedAt)

	consumer := newConsumer(t, broker)
	received := make(map[string]publishedMessage, 3)
	for len(received) < 3 {
		pm := readPublished(ctx, t, consumer)
		received[pm.Key] = pm
	}

	chile, ok := received["us7000m9g4"]
	require.True(t, ok, "expected the Ovalle, Chile event")
	assert.Equal(t, "#E31A1C", chile.Headers["depth_color"])
	_, err := time.Parse(time.RFC3339, chile.Headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")
	assert.Equal(t, 26.0, chile.Feature.Style.Radius)
	assert.Equal(t, 60.0, chile.Feature.Feature.DepthKm)
	assert.Contains(t, chile.Feature.Popup, "45 km SW of Ovalle, Chile")

	hawaii, ok := received["hv74102391"]
	require.True(t, ok, "expected the Volcano, Hawaii event")
	assert.Equal(t, "#FD8D3C", hawaii.Headers["depth_color"])

	for key, pm := range received {
		assert.Equal(t, key, pm.Feature.Feature.ID)
		assert.Equal(t, domain.StyleForFeature(pm.Feature.Feature.Magnitude, pm.Feature.Feature.DepthKm), pm.Feature.Style)
	}
}

// TestRunRepublishesOnTick drives Run with a fake clock and checks that each
// tick triggers another full publish of the feed.
func TestRunRepublishesOnTick(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)
	feed := serveFeed(t)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testTopic}
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClock()

	writer := kafka.NewWriter(cfg, metrics, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(
		usgs.NewClient(feed.URL, 10*time.Second, metrics, discardLogger()),
		pipeline.NewTransformer(nil, discardLogger()),
		writer,
		discardLogger(), metrics, clock, time.Minute,
	)

	runCtx, runCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(runCtx) }()

	consumer := newConsumer(t, broker)
	for range 3 {
		readPublished(ctx, t, consumer)
	}

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)

	keys := make(map[string]bool, 3)
	for range 3 {
		keys[readPublished(ctx, t, consumer).Key] = true
	}
	assert.Len(t, keys, 3)

	runCancel()
	require.NoError(t, <-errCh)
}
