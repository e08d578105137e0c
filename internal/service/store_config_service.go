package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/coerce"
	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/internal/domain"
	"github.com/jafarshop/storeconfig/internal/metrics"
	"github.com/jafarshop/storeconfig/internal/repository"
	"github.com/jafarshop/storeconfig/internal/storeconfig"
	apperrors "github.com/jafarshop/storeconfig/pkg/errors"
)

var strict = coerce.Parser{Mode: coerce.Strict}

type StoreConfigService struct {
	backend      StoreBackend
	marketplaces *MarketplaceService
	repos        *repository.Repositories
	logger       *zap.Logger
}

// NewStoreConfigService creates a new store configuration service
func NewStoreConfigService(
	backend StoreBackend,
	marketplaces *MarketplaceService,
	repos *repository.Repositories,
	logger *zap.Logger,
) *StoreConfigService {
	if repos == nil {
		repos = &repository.Repositories{}
	}
	return &StoreConfigService{
		backend:      backend,
		marketplaces: marketplaces,
		repos:        repos,
		logger:       logger,
	}
}

// ListStores returns store summaries
func (s *StoreConfigService) ListStores(ctx context.Context, params catalog.StoreListParams) ([]dashboard.StoreRow, error) {
	rows, err := s.backend.ListStores(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Normalize()
	}
	if rows == nil {
		rows = []dashboard.StoreRow{}
	}
	return rows, nil
}

// GetEditable loads a store and shapes it for editing
func (s *StoreConfigService) GetEditable(ctx context.Context, storeID int64) (*storeconfig.EditableStore, error) {
	rec, err := s.backend.GetStore(ctx, storeID)
	if err != nil {
		return nil, notFound(err, "store", storeID)
	}
	editable := storeconfig.Inbound(*rec)
	return &editable, nil
}

// Preview returns the payload a save would send along with any validation
// issues. Nothing is persisted.
func (s *StoreConfigService) Preview(ctx context.Context, form storeconfig.Form) (*PreviewResult, error) {
	form = s.withMarketplace(ctx, form)

	result := &PreviewResult{
		Payload: form.Payload(),
		Issues:  []string{},
	}
	if err := storeconfig.Validate(form); err != nil {
		var v *apperrors.ErrValidation
		if !errors.As(err, &v) {
			return nil, err
		}
		result.Issues = v.Issues
	}
	return result, nil
}

// Create validates the form and creates a new store from it
func (s *StoreConfigService) Create(ctx context.Context, form storeconfig.Form) (*storeconfig.EditableStore, error) {
	form = s.withMarketplace(ctx, form)
	if err := storeconfig.Validate(form); err != nil {
		metrics.RecordConfigSave("create", "invalid")
		return nil, err
	}

	payload := form.Payload()
	rec, err := s.backend.CreateStore(ctx, payload)
	if err != nil {
		metrics.RecordConfigSave("create", "failed")
		return nil, err
	}
	metrics.RecordConfigSave("create", "ok")

	s.recordEvent(ctx, rec.ID, domain.ConfigEventCreated, payload)

	editable := storeconfig.Inbound(*rec)
	return &editable, nil
}

// Update validates the form and replaces the store's configuration. The
// rule collections are rebuilt in full.
func (s *StoreConfigService) Update(ctx context.Context, storeID int64, form storeconfig.Form) (*storeconfig.EditableStore, error) {
	form = s.withMarketplace(ctx, form)
	if err := storeconfig.Validate(form); err != nil {
		metrics.RecordConfigSave("update", "invalid")
		return nil, err
	}

	payload := form.Payload()
	rec, err := s.backend.UpdateStore(ctx, storeID, payload)
	if err != nil {
		metrics.RecordConfigSave("update", "failed")
		return nil, notFound(err, "store", storeID)
	}
	metrics.RecordConfigSave("update", "ok")

	s.recordEvent(ctx, storeID, domain.ConfigEventUpdated, payload)

	editable := storeconfig.Inbound(*rec)
	return &editable, nil
}

// Delete removes a store
func (s *StoreConfigService) Delete(ctx context.Context, storeID int64) error {
	if err := s.backend.DeleteStore(ctx, storeID); err != nil {
		return notFound(err, "store", storeID)
	}
	return nil
}

// PriceSettings returns the price settings the backend holds for a store
func (s *StoreConfigService) PriceSettings(ctx context.Context, storeID int64) (json.RawMessage, error) {
	out, err := s.backend.GetStorePriceSettings(ctx, storeID)
	if err != nil {
		return nil, notFound(err, "store", storeID)
	}
	return out, nil
}

// AddVendorPriceSettings saves one vendor's pricing rules without resending
// the rest of the store
func (s *StoreConfigService) AddVendorPriceSettings(ctx context.Context, storeID int64, vendor storeconfig.VendorPriceForm) (json.RawMessage, error) {
	if err := storeconfig.ValidateVendorPrice(vendor); err != nil {
		metrics.RecordConfigSave("price_settings", "invalid")
		return nil, err
	}

	out, err := s.backend.CreateStorePriceSettings(ctx, storeID, storeconfig.VendorPricePayload(vendor))
	if err != nil {
		metrics.RecordConfigSave("price_settings", "failed")
		return nil, notFound(err, "store", storeID)
	}

	metrics.RecordConfigSave("price_settings", "ok")
	s.logger.Info("Vendor price settings saved", zap.Int64("store_id", storeID), zap.String("vendor_id", vendor.VendorID.String()))
	return out, nil
}

// Events returns the audit trail of a store, newest first
func (s *StoreConfigService) Events(ctx context.Context, storeID int64, limit int) ([]*domain.ConfigEvent, error) {
	if s.repos.ConfigEvent == nil {
		return nil, &apperrors.ErrNotConfigured{Setting: "DB_HOST"}
	}
	events, err := s.repos.ConfigEvent.ListByStoreID(ctx, storeID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.ConfigEvent{}
	}
	return events, nil
}

// withMarketplace fills in the marketplace name and code when the form only
// carries the id, so MyDeal stores keep their settings block.
func (s *StoreConfigService) withMarketplace(ctx context.Context, form storeconfig.Form) storeconfig.Form {
	info := form.StoreInfo
	if info.MarketplaceName != "" || info.MarketplaceCode != "" || s.marketplaces == nil {
		return form
	}

	id, err := strict.Int(info.Marketplace.String(), 0)
	if err != nil || id <= 0 {
		return form
	}

	mp, err := s.marketplaces.Find(ctx, id)
	if err != nil {
		s.logger.Debug("Marketplace lookup failed", zap.Int64("marketplace_id", id), zap.Error(err))
		return form
	}
	form.StoreInfo.MarketplaceName = mp.Name
	form.StoreInfo.MarketplaceCode = mp.Code
	return form
}

// recordEvent writes an audit entry. A failure is logged and never fails
// the save.
func (s *StoreConfigService) recordEvent(ctx context.Context, storeID int64, eventType domain.ConfigEventType, payload domain.StorePayload) {
	if s.repos.ConfigEvent == nil {
		return
	}

	event := &domain.ConfigEvent{
		StoreID:   storeID,
		EventType: eventType,
		EventData: map[string]interface{}{
			"name":              payload.Name,
			"marketplace_id":    payload.MarketplaceID,
			"price_vendors":     len(payload.PriceSettingsByVendor),
			"inventory_vendors": len(payload.InventorySettingsByVendor),
			"mydeal":            payload.Settings != nil,
		},
	}
	if err := s.repos.ConfigEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record config event",
			zap.Int64("store_id", storeID),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
	}
}
