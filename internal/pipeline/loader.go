package pipeline

import (
	"context"

	"github.com/couchcryptid/quake-map-service/internal/domain"
)

// MultiLoader fans a batch out to several loaders in order and stops at the
// first error.
type MultiLoader []BatchLoader

func (m MultiLoader) LoadBatch(ctx context.Context, features []domain.StyledFeature) error {
	for _, l := range m {
		if err := l.LoadBatch(ctx, features); err != nil {
			return err
		}
	}
	return nil
}
