package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jafarshop/storeconfig/internal/domain"
)

const (
	defaultExportType  = "full"
	defaultExportLimit = 20
)

// ExportRequest asks the backend to generate an export file
type ExportRequest struct {
	StoreID    int64  `json:"store_id"`
	VendorID   int64  `json:"vendor_id,omitempty"`
	ExportType string `json:"export_type"`
}

// GenerateExport starts an export; the type defaults to a full export
func (c *Client) GenerateExport(ctx context.Context, export ExportRequest) (json.RawMessage, error) {
	if export.ExportType == "" {
		export.ExportType = defaultExportType
	}
	req, err := jsonRequest(http.MethodPost, "/export/generate", export)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListExports returns recent exports, optionally for one store
func (c *Client) ListExports(ctx context.Context, storeID int64, limit int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = defaultExportLimit
	}
	query := NewQuery().Int("store_id", storeID).Int("limit", int64(limit)).Values()

	var out json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/export/exports", query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetExport(ctx context.Context, exportID int64) (json.RawMessage, error) {
	var out json.RawMessage
	endpoint := fmt.Sprintf("/export/exports/%d", exportID)
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadExportURL is where the file of one export can be fetched
func (c *Client) DownloadExportURL(exportID int64) string {
	return fmt.Sprintf("%s/export/exports/%d/download", c.baseURL, exportID)
}

// LatestExportURL is where the most recent export of a kind for a store can
// be fetched
func (c *Client) LatestExportURL(storeID int64, kind domain.ExportKind) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown export kind %q", kind)
	}
	return fmt.Sprintf("%s/export/stores/%d/latest/%s/download",
		c.baseURL, storeID, url.PathEscape(string(kind))), nil
}
