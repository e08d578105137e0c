package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/internal/metrics"
)

type DashboardService struct {
	loader *dashboard.Loader
	logger *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(source dashboard.Source, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		loader: dashboard.NewLoader(source, logger),
		logger: logger,
	}
}

// FilterFrom builds a filter from request selections, applying the
// marketplace first so a store only survives inside it
func FilterFrom(marketplaceID, storeID string) dashboard.Filter {
	return dashboard.Filter{}.
		SelectMarketplace(strings.TrimSpace(marketplaceID)).
		SelectStore(strings.TrimSpace(storeID))
}

// Load fetches one consistent snapshot for the filter
func (s *DashboardService) Load(ctx context.Context, filter dashboard.Filter) (*dashboard.Snapshot, error) {
	snap, err := s.loader.Load(ctx, filter)
	if err != nil {
		metrics.RecordDashboardLoad("failed")
		return nil, err
	}
	metrics.RecordDashboardLoad("ok")
	return snap, nil
}
