// Package catalog is the HTTP client for the catalog backend that owns
// marketplaces, stores, vendors, products and exports.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/config"
	"github.com/jafarshop/storeconfig/internal/metrics"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// APIError is a response from the backend that could not be used: a non-2xx
// status or an HTML page where JSON was expected.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NotFound reports whether the backend answered 404
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// New creates a catalog client. It fails before any request is attempted
// when no base URL is configured.
func New(cfg config.CatalogConfig, logger *zap.Logger) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, &errors.ErrNotConfigured{Setting: "CATALOG_API_BASE_URL"}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the normalized backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request is one call to the backend. A nil body sends no payload.
type request struct {
	method      string
	endpoint    string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, endpoint string, payload interface{}) (request, error) {
	req := request{method: method, endpoint: endpoint, contentType: "application/json"}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to marshal request: %w", err)
	}
	req.body = bytes.NewReader(data)
	return req, nil
}

func (c *Client) url(endpoint string, query url.Values) string {
	u := c.baseURL + endpoint
	if enc := query.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// do executes a single request and decodes the JSON response into out.
// There is no retry.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	target := c.url(r.endpoint, r.query)

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveCatalogRequest(r.method, routeLabel(r.endpoint), "error", time.Since(start))
		c.logger.Error("Catalog request failed",
			zap.String("method", r.method),
			zap.String("url", target),
			zap.Error(err),
		)
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	metrics.ObserveCatalogRequest(r.method, routeLabel(r.endpoint), fmt.Sprint(resp.StatusCode), time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// An HTML page usually means the base URL points somewhere else
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		c.logger.Error("Catalog returned HTML",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
		)
		return &APIError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Message: fmt.Sprintf("API endpoint returned HTML instead of JSON. "+
				"Check that CATALOG_API_BASE_URL is set correctly. Current URL: %s", target),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Message:    errorMessage(resp, body),
		}
		c.logger.Warn("Catalog request rejected",
			zap.String("method", r.method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// errorMessage prefers the error or message field of a JSON body
func errorMessage(resp *http.Response, body []byte) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, v := range []interface{}{payload.Error, payload.Message} {
			if s := messageText(v); s != "" {
				return s
			}
		}
	}

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return "API call failed: " + status
}

func messageText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	}
	data, _ := json.Marshal(v)
	return string(data)
}
