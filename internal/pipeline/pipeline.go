package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// Extractor fetches the current feed window.
type Extractor interface {
	Fetch(ctx context.Context) ([]domain.EarthquakeFeature, error)
}

// Transformer converts a feed feature into a styled feature.
type Transformer interface {
	Transform(ctx context.Context, f domain.EarthquakeFeature) (domain.StyledFeature, error)
}

// BatchLoader writes a refresh's styled features to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, features []domain.StyledFeature) error
}

// Pipeline orchestrates the periodic fetch-style-load refresh.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	interval    time.Duration
	ready       atomic.Bool
}

// New creates a Pipeline that refreshes every interval.
func New(e Extractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock, interval time.Duration) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
		interval:    interval,
	}
}

// CheckReadiness returns nil once a refresh has been loaded,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no earthquake snapshot loaded yet")
	}
	return nil
}

// Run refreshes immediately and then on every tick until the context is
// cancelled. A failed refresh waits for the next tick; there is no retry.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "interval", p.interval)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Refresh(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

// Refresh runs one fetch-style-load cycle and reports whether it loaded.
func (p *Pipeline) Refresh(ctx context.Context) bool {
	start := p.clock.Now()

	features, err := p.extractor.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("feed fetch failed", "error", err)
		}
		return false
	}

	styled := p.transform(ctx, features)

	if err := p.loader.LoadBatch(ctx, styled); err != nil {
		p.metrics.LoadErrors.Inc()
		p.logger.Error("load failed", "error", err, "features", len(styled))
		return false
	}

	p.metrics.RefreshDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("refresh complete",
		"fetched", len(features),
		"loaded", len(styled),
	)
	return true
}

// transform styles each feature, skipping the ones the transformer rejects.
func (p *Pipeline) transform(ctx context.Context, features []domain.EarthquakeFeature) []domain.StyledFeature {
	out := make([]domain.StyledFeature, 0, len(features))
	for _, f := range features {
		sf, err := p.transformer.Transform(ctx, f)
		if err != nil {
			p.logger.Warn("transform failed, skipping feature", "event_id", f.ID, "error", err)
			p.metrics.TransformErrors.Inc()
			continue
		}
		out = append(out, sf)
	}
	return out
}
