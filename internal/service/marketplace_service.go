package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/cache"
	"github.com/jafarshop/storeconfig/internal/domain"
	"github.com/jafarshop/storeconfig/internal/metrics"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

const marketplacesCacheKey = "storeconfig:marketplaces"

type MarketplaceService struct {
	backend MarketplaceBackend
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewMarketplaceService creates a new marketplace service. The list is
// reference data and is cached for ttl.
func NewMarketplaceService(backend MarketplaceBackend, c cache.Cache, ttl time.Duration, logger *zap.Logger) *MarketplaceService {
	if c == nil {
		c = cache.Noop{}
	}
	return &MarketplaceService{
		backend: backend,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// List returns every marketplace. Cache failures fall back to the backend.
func (s *MarketplaceService) List(ctx context.Context) ([]domain.Marketplace, error) {
	var cached []domain.Marketplace
	found, err := s.cache.Get(ctx, marketplacesCacheKey, &cached)
	if err != nil {
		s.logger.Warn("Failed to read marketplaces from cache", zap.Error(err))
	}
	metrics.RecordMarketplaceCache(found)
	if found {
		return cached, nil
	}

	marketplaces, err := s.backend.ListMarketplaces(ctx)
	if err != nil {
		return nil, err
	}
	if marketplaces == nil {
		marketplaces = []domain.Marketplace{}
	}

	if err := s.cache.Set(ctx, marketplacesCacheKey, marketplaces, s.ttl); err != nil {
		s.logger.Warn("Failed to cache marketplaces", zap.Error(err))
	}
	return marketplaces, nil
}

// Find returns one marketplace by id
func (s *MarketplaceService) Find(ctx context.Context, id int64) (*domain.Marketplace, error) {
	marketplaces, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range marketplaces {
		if marketplaces[i].ID == id {
			return &marketplaces[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "marketplace", ID: strconv.FormatInt(id, 10)}
}

// Create adds a marketplace and drops the cached list
func (s *MarketplaceService) Create(ctx context.Context, name, code string) (*domain.Marketplace, error) {
	v := &errors.ErrValidation{}
	if strings.TrimSpace(name) == "" {
		v.Add("name is required")
	}
	if strings.TrimSpace(code) == "" {
		v.Add("code is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	created, err := s.backend.CreateMarketplace(ctx, domain.Marketplace{
		Name: strings.TrimSpace(name),
		Code: strings.TrimSpace(code),
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, marketplacesCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate marketplaces cache", zap.Error(err))
	}
	return created, nil
}
