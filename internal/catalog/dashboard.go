package catalog

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jafarshop/storeconfig/internal/dashboard"
)

var _ dashboard.Source = (*Client)(nil)

// Summary fetches the dashboard KPIs
func (c *Client) Summary(ctx context.Context, params url.Values) (*dashboard.Summary, error) {
	var out dashboard.Summary
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/dashboard/summary", query: params}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stores fetches the per-store dashboard cards
func (c *Client) Stores(ctx context.Context, params url.Values) ([]dashboard.StoreRow, error) {
	var out []dashboard.StoreRow
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/marketplace/stores", query: params}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Vendors fetches the per-vendor dashboard lines
func (c *Client) Vendors(ctx context.Context, params url.Values) ([]dashboard.VendorRow, error) {
	var out []dashboard.VendorRow
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/vendor/vendors", query: params}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
