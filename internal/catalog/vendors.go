package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jafarshop/storeconfig/internal/dashboard"
)

// Vendor is a supplier whose products are listed on stores
type Vendor struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// ListVendors returns every vendor with its dashboard counts
func (c *Client) ListVendors(ctx context.Context) ([]dashboard.VendorRow, error) {
	var out []dashboard.VendorRow
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/vendor/vendors"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetVendor(ctx context.Context, vendorID int64) (*Vendor, error) {
	var out Vendor
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: vendorPath(vendorID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateVendor(ctx context.Context, v Vendor) (*Vendor, error) {
	req, err := jsonRequest(http.MethodPost, "/vendor/vendors", v)
	if err != nil {
		return nil, err
	}

	var out Vendor
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVendor(ctx context.Context, vendorID int64, v Vendor) (*Vendor, error) {
	req, err := jsonRequest(http.MethodPut, vendorPath(vendorID), v)
	if err != nil {
		return nil, err
	}

	var out Vendor
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVendor(ctx context.Context, vendorID int64) error {
	return c.do(ctx, request{method: http.MethodDelete, endpoint: vendorPath(vendorID)}, nil)
}

// GetVendorPrices returns the raw price list of a vendor
func (c *Client) GetVendorPrices(ctx context.Context, vendorID int64) (json.RawMessage, error) {
	var out json.RawMessage
	endpoint := fmt.Sprintf("/vendor/vendor-prices/%d", vendorID)
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func vendorPath(vendorID int64) string {
	return fmt.Sprintf("/vendor/vendors/%d", vendorID)
}
