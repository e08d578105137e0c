package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/cache"
	"github.com/jafarshop/storeconfig/internal/repository"
)

// Services groups the services the API is built on
type Services struct {
	StoreConfig *StoreConfigService
	Marketplace *MarketplaceService
	Vendors     *VendorService
	Dashboard   *DashboardService
	Operations  *OperationsService
}

// NewServices wires every service to one catalog backend
func NewServices(backend Backend, c cache.Cache, marketplaceTTL time.Duration, repos *repository.Repositories, logger *zap.Logger) *Services {
	marketplaces := NewMarketplaceService(backend, c, marketplaceTTL, logger)
	return &Services{
		StoreConfig: NewStoreConfigService(backend, marketplaces, repos, logger),
		Marketplace: marketplaces,
		Vendors:     NewVendorService(backend, logger),
		Dashboard:   NewDashboardService(backend, logger),
		Operations:  NewOperationsService(backend, logger),
	}
}
