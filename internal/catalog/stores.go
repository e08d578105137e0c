package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/internal/domain"
)

// StoreListParams filters the store summary list
type StoreListParams struct {
	MarketplaceID string
	ActiveOnly    *bool
}

// ListMarketplaces returns every marketplace
func (c *Client) ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error) {
	var out []domain.Marketplace
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/marketplace/marketplaces"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMarketplace creates a marketplace
func (c *Client) CreateMarketplace(ctx context.Context, m domain.Marketplace) (*domain.Marketplace, error) {
	req, err := jsonRequest(http.MethodPost, "/marketplace/marketplaces", map[string]string{
		"name": m.Name,
		"code": m.Code,
	})
	if err != nil {
		return nil, err
	}

	var out domain.Marketplace
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStores returns store summaries
func (c *Client) ListStores(ctx context.Context, params StoreListParams) ([]dashboard.StoreRow, error) {
	query := NewQuery().
		String("marketplace_id", params.MarketplaceID).
		Bool("active_only", params.ActiveOnly).
		Values()

	var out []dashboard.StoreRow
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/marketplace/stores", query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStore returns a store with its full vendor settings
func (c *Client) GetStore(ctx context.Context, storeID int64) (*domain.StoreRecord, error) {
	var out domain.StoreRecord
	endpoint := fmt.Sprintf("/marketplace/stores/%d", storeID)
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStore persists a new store and returns the backend's copy
func (c *Client) CreateStore(ctx context.Context, payload domain.StorePayload) (*domain.StoreRecord, error) {
	req, err := jsonRequest(http.MethodPost, "/marketplace/stores", payload)
	if err != nil {
		return nil, err
	}

	var out domain.StoreRecord
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStore replaces a store's configuration
func (c *Client) UpdateStore(ctx context.Context, storeID int64, payload domain.StorePayload) (*domain.StoreRecord, error) {
	req, err := jsonRequest(http.MethodPut, fmt.Sprintf("/marketplace/stores/%d", storeID), payload)
	if err != nil {
		return nil, err
	}

	var out domain.StoreRecord
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStore removes a store
func (c *Client) DeleteStore(ctx context.Context, storeID int64) error {
	endpoint := fmt.Sprintf("/marketplace/stores/%d", storeID)
	return c.do(ctx, request{method: http.MethodDelete, endpoint: endpoint}, nil)
}

// GetStorePriceSettings returns the raw price settings of a store
func (c *Client) GetStorePriceSettings(ctx context.Context, storeID int64) (json.RawMessage, error) {
	var out json.RawMessage
	endpoint := fmt.Sprintf("/marketplace/stores/%d/price-settings", storeID)
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateStorePriceSettings stores price settings for one vendor of a store
func (c *Client) CreateStorePriceSettings(ctx context.Context, storeID int64, settings domain.VendorPricePayload) (json.RawMessage, error) {
	req, err := jsonRequest(http.MethodPost, fmt.Sprintf("/marketplace/stores/%d/price-settings", storeID), settings)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
