package repository

import (
	"context"

	"github.com/jafarshop/storeconfig/internal/domain"
)

// ConfigEventRepository stores the audit trail of store configuration saves
type ConfigEventRepository interface {
	Create(ctx context.Context, event *domain.ConfigEvent) error
	ListByStoreID(ctx context.Context, storeID int64, limit int) ([]*domain.ConfigEvent, error)
}

// Repositories groups the repositories. ConfigEvent is nil when no
// database is configured.
type Repositories struct {
	ConfigEvent ConfigEventRepository
}
