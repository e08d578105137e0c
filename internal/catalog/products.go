package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
)

// ProductListParams filters the product list
type ProductListParams struct {
	StoreID  int64
	VendorID int64
	Search   string
	Limit    int64
	Offset   int64
}

// ProductUpload is a product CSV handed to the backend unread
type ProductUpload struct {
	FileName string
	File     io.Reader
	VendorID int64
	StoreID  int64
}

// ScrapeRequest starts a scrape for a store, optionally narrowed to a vendor
type ScrapeRequest struct {
	StoreID  int64 `json:"store_id"`
	VendorID int64 `json:"vendor_id,omitempty"`
}

// ListProducts returns the raw product list for the given filters
func (c *Client) ListProducts(ctx context.Context, params ProductListParams) (json.RawMessage, error) {
	query := NewQuery().
		Int("store_id", params.StoreID).
		Int("vendor_id", params.VendorID).
		String("search", params.Search).
		Int("limit", params.Limit).
		Int("offset", params.Offset).
		Values()

	var out json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: "/products/", query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (json.RawMessage, error) {
	var out json.RawMessage
	endpoint := fmt.Sprintf("/products/%d", productID)
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, product json.RawMessage) (json.RawMessage, error) {
	req, err := jsonRequest(http.MethodPost, "/products/", product)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	endpoint := fmt.Sprintf("/products/%d", productID)
	return c.do(ctx, request{method: http.MethodDelete, endpoint: endpoint}, nil)
}

// UploadProducts streams a product CSV to the backend as multipart form data
func (c *Client) UploadProducts(ctx context.Context, upload ProductUpload) (json.RawMessage, error) {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUpload(form, upload))
	}()

	req := request{
		method:      http.MethodPost,
		endpoint:    "/products/upload",
		body:        pr,
		contentType: form.FormDataContentType(),
	}

	var out json.RawMessage
	err := c.do(ctx, req, &out)
	// unblock the writer if the request ended before the body was read
	pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func writeUpload(form *multipart.Writer, upload ProductUpload) error {
	part, err := form.CreateFormFile("file", upload.FileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, upload.File); err != nil {
		return fmt.Errorf("failed to stream upload: %w", err)
	}
	if err := form.WriteField("vendor_id", strconv.FormatInt(upload.VendorID, 10)); err != nil {
		return err
	}
	if err := form.WriteField("store_id", strconv.FormatInt(upload.StoreID, 10)); err != nil {
		return err
	}
	return form.Close()
}

// StartScrape starts a scraping job and returns the backend's job record
func (c *Client) StartScrape(ctx context.Context, scrape ScrapeRequest) (json.RawMessage, error) {
	req, err := jsonRequest(http.MethodPost, "/products/scrape", scrape)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetScrapeStatus(ctx context.Context, scrapeID int64) (json.RawMessage, error) {
	var out json.RawMessage
	endpoint := fmt.Sprintf("/products/scrapes/%d", scrapeID)
	if err := c.do(ctx, request{method: http.MethodGet, endpoint: endpoint}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
