package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// Snapshot is the styled feature set served to map clients.
type Snapshot struct {
	Features  []domain.StyledFeature
	UpdatedAt time.Time
}

// Store holds the latest snapshot in memory. It implements pipeline.BatchLoader.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

// NewStore creates an empty store.
func NewStore(clock clockwork.Clock, metrics *observability.Metrics) *Store {
	return &Store{clock: clock, metrics: metrics}
}

// LoadBatch replaces the snapshot with features. Each refresh carries the
// whole feed window, so nothing is merged.
func (s *Store) LoadBatch(_ context.Context, features []domain.StyledFeature) error {
	cp := make([]domain.StyledFeature, len(features))
	copy(cp, features)

	s.mu.Lock()
	s.snapshot = Snapshot{Features: cp, UpdatedAt: s.clock.Now().UTC()}
	s.mu.Unlock()

	s.metrics.SnapshotFeatures.Set(float64(len(cp)))
	return nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]domain.StyledFeature, len(s.snapshot.Features))
	copy(cp, s.snapshot.Features)
	return Snapshot{Features: cp, UpdatedAt: s.snapshot.UpdatedAt}
}
