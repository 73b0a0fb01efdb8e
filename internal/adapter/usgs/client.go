package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// maxFeedBytes bounds the response body; all_month is roughly 10 MB.
const maxFeedBytes = 64 << 20

// Client fetches a USGS summary feed. It implements pipeline.Extractor.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client for the given summary feed URL.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch downloads and decodes the feed. Failures are returned as-is; the
// caller decides when to try again.
func (c *Client) Fetch(ctx context.Context) ([]domain.EarthquakeFeature, error) {
	start := time.Now()
	feed, err := c.fetch(ctx)
	c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FeedFetches.WithLabelValues("error").Inc()
		return nil, err
	}

	c.metrics.FeedFetches.WithLabelValues("success").Inc()
	c.metrics.FeaturesFetched.Add(float64(len(feed.Features)))
	c.metrics.FeaturesSkipped.Add(float64(feed.Skipped))
	if feed.Skipped > 0 {
		c.logger.Warn("skipped malformed feed records", "skipped", feed.Skipped)
	}
	c.logger.Debug("feed fetched",
		"title", feed.Title,
		"generated_at", feed.GeneratedAt,
		"features", len(feed.Features),
	)
	return feed.Features, nil
}

func (c *Client) fetch(ctx context.Context) (Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return Feed{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("usgs feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Feed{}, fmt.Errorf("usgs feed error: status %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return Feed{}, fmt.Errorf("read usgs feed: %w", err)
	}
	return ParseFeed(data)
}
