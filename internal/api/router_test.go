package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/api/middleware"
	"github.com/jafarshop/storeconfig/internal/cache"
	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/config"
	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/internal/domain"
	"github.com/jafarshop/storeconfig/internal/service"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBackend struct {
	service.Backend

	stores        map[int64]*domain.StoreRecord
	saved         *domain.StorePayload
	savedSettings *domain.VendorPricePayload
	dashboardErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		Backend: service.Unconfigured(fmt.Errorf("unexpected call")),
		stores:  map[int64]*domain.StoreRecord{},
	}
}

func (f *fakeBackend) GetStore(_ context.Context, storeID int64) (*domain.StoreRecord, error) {
	rec, ok := f.stores[storeID]
	if !ok {
		return nil, &catalog.APIError{StatusCode: http.StatusNotFound, Message: "API call failed: 404 Not Found"}
	}
	return rec, nil
}

func (f *fakeBackend) UpdateStore(_ context.Context, storeID int64, payload domain.StorePayload) (*domain.StoreRecord, error) {
	f.saved = &payload
	return &domain.StoreRecord{ID: storeID, Name: payload.Name}, nil
}

func (f *fakeBackend) ListMarketplaces(context.Context) ([]domain.Marketplace, error) {
	return []domain.Marketplace{{ID: 3, Name: "MyDeal", Code: "mydeal"}}, nil
}

func (f *fakeBackend) CreateStorePriceSettings(_ context.Context, _ int64, settings domain.VendorPricePayload) (json.RawMessage, error) {
	f.savedSettings = &settings
	return json.RawMessage(`{"id": 1}`), nil
}

func (f *fakeBackend) GetVendor(_ context.Context, vendorID int64) (*catalog.Vendor, error) {
	if vendorID != 5 {
		return nil, &catalog.APIError{StatusCode: http.StatusNotFound, Message: "API call failed: 404 Not Found"}
	}
	return &catalog.Vendor{ID: 5, Name: "Acme Supply"}, nil
}

func (f *fakeBackend) GetProduct(_ context.Context, productID int64) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`{"id": %d, "sku": "A1"}`, productID)), nil
}

func (f *fakeBackend) GetExport(_ context.Context, exportID int64) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`{"id": %d}`, exportID)), nil
}

func (f *fakeBackend) DownloadExportURL(exportID int64) string {
	return fmt.Sprintf("https://catalog.test/export/exports/%d/download", exportID)
}

func (f *fakeBackend) LatestExportURL(storeID int64, kind domain.ExportKind) (string, error) {
	return fmt.Sprintf("https://catalog.test/export/stores/%d/latest/%s/download", storeID, kind), nil
}

func (f *fakeBackend) Summary(context.Context, url.Values) (*dashboard.Summary, error) {
	if f.dashboardErr != nil {
		return nil, f.dashboardErr
	}
	return &dashboard.Summary{TotalProducts: 42}, nil
}

func (f *fakeBackend) Stores(context.Context, url.Values) ([]dashboard.StoreRow, error) {
	return []dashboard.StoreRow{{StoreID: 1, StoreName: "Acme"}}, nil
}

func (f *fakeBackend) Vendors(context.Context, url.Values) ([]dashboard.VendorRow, error) {
	return []dashboard.VendorRow{}, nil
}

func newTestRouter(backend service.Backend) *gin.Engine {
	services := service.NewServices(backend, cache.Noop{}, time.Minute, nil, zap.NewNop())
	return NewRouter(&config.Config{Environment: "test"}, services, zap.NewNop())
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	w := perform(newTestRouter(newFakeBackend()), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestGetStoreConfig(t *testing.T) {
	backend := newFakeBackend()
	backend.stores[7] = &domain.StoreRecord{
		ID:          7,
		Name:        "Acme",
		Marketplace: &domain.MarketplaceRef{ID: domain.NumericInt(3), Name: "MyDeal", Code: "mydeal"},
	}
	router := newTestRouter(backend)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/v1/stores/7/config", http.StatusOK},
		{"missing", "/v1/stores/8/config", http.StatusNotFound},
		{"bad id", "/v1/stores/abc/config", http.StatusBadRequest},
		{"zero id", "/v1/stores/0/config", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := perform(router, http.MethodGet, "/v1/stores/7/config", "")
	body := decode(t, w)
	info := body["storeInfo"].(map[string]interface{})
	assert.Equal(t, "Acme", info["storeName"])
	assert.Equal(t, "3", info["marketplace"])
	assert.Equal(t, "mydeal", info["marketplaceCode"])
}

func TestUpdateStoreConfig(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	w := perform(router, http.MethodPut, "/v1/stores/7/config", `{
		"storeInfo": {"storeName": "Acme", "marketplace": "3"},
		"priceSettingsByVendor": [{"vendorId": 5, "priceRanges": [{"from": "0", "to": "MAX", "minimumMargin": "2"}]}]
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, backend.saved)
	assert.Equal(t, int64(200), backend.saved.PriceSettingsByVendor[0].PriceRanges[0].MinimumMarginCents)
	require.NotNil(t, backend.saved.Settings)
	assert.NotNil(t, backend.saved.Settings.MyDeal)
}

func TestUpdateStoreConfig_Invalid(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	w := perform(router, http.MethodPut, "/v1/stores/7/config", `{
		"storeInfo": {"storeName": "Acme", "marketplace": "3"},
		"priceSettingsByVendor": [
			{"vendorId": 5, "priceRanges": [{"from": "10", "to": "MAX"}, {"from": "0", "to": "5"}]}
		]
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, "validation failed", body["error"])
	assert.NotEmpty(t, body["details"])
	assert.Nil(t, backend.saved)

	w = perform(router, http.MethodPut, "/v1/stores/7/config", `{"storeInfo": {"storeName": {}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewStoreConfig(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	w := perform(router, http.MethodPost, "/v1/stores/7/config/preview", `{
		"storeInfo": {"storeName": "Acme", "marketplace": "9", "marketplaceCode": "catch"},
		"inventorySettingsByVendor": [{"vendorId": 2, "priceRanges": [{"from": "0", "to": "", "multipliedWith": "1.5"}]}]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"payload": {
			"name": "Acme",
			"marketplace_id": 9,
			"api_key_enc": "",
			"price_settings_by_vendor": [],
			"inventory_settings_by_vendor": [
				{"vendor_id": 2, "inventory_ranges": [{"from_value": 0, "to_value": "MAX", "multiplier": 1.5}]}
			]
		},
		"issues": []
	}`, w.Body.String())
}

func TestLatestExport(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	w := perform(router, http.MethodGet, "/v1/stores/4/exports/price/latest", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://catalog.test/export/stores/4/latest/price/download", w.Header().Get("Location"))

	w = perform(router, http.MethodGet, "/v1/stores/4/exports/full/latest", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDashboard(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	w := perform(router, http.MethodGet, "/v1/dashboard?marketplace_id=3&store_id=__ALL__", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]interface{}{"marketplace_id": "3"}, body["filter"])
	assert.EqualValues(t, 42, body["summary"].(map[string]interface{})["totalProducts"])

	backend.dashboardErr = &url.Error{Op: "Get", URL: "http://catalog.test", Err: fmt.Errorf("connection refused")}
	w = perform(router, http.MethodGet, "/v1/dashboard", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCatalogErrorsMapToBadGateway(t *testing.T) {
	backend := newFakeBackend()
	backend.dashboardErr = &catalog.APIError{StatusCode: http.StatusInternalServerError, Message: "database is locked"}
	router := newTestRouter(backend)

	w := perform(router, http.MethodGet, "/v1/dashboard", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := decode(t, w)
	assert.Equal(t, "database is locked", body["error"])
	assert.EqualValues(t, 500, body["catalog_status"])
}

func TestUnconfiguredCatalog(t *testing.T) {
	router := newTestRouter(service.Unconfigured(&errors.ErrNotConfigured{Setting: "CATALOG_API_BASE_URL"}))

	w := perform(router, http.MethodGet, "/v1/marketplaces", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "CATALOG_API_BASE_URL is not configured")
}

func TestConfigEventsWithoutDatabase(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	w := perform(router, http.MethodGet, "/v1/stores/4/config/events", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDIsKept(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestUpdateStoreConfig_StringVendorID(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	w := perform(router, http.MethodPut, "/v1/stores/7/config", `{
		"storeInfo": {"storeName": "Acme", "marketplace": "3"},
		"priceSettingsByVendor": [{"vendorId": "5", "priceRanges": [{"from": "0", "to": "MAX"}]}]
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(5), backend.saved.PriceSettingsByVendor[0].VendorID)
}

func TestAddPriceSettings(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	w := perform(router, http.MethodPost, "/v1/stores/4/price-settings",
		`{"vendorId": "7", "priceRanges": [{"from": "0", "to": "MAX", "minimumMargin": "3"}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, backend.savedSettings)
	assert.Equal(t, int64(300), backend.savedSettings.PriceRanges[0].MinimumMarginCents)

	backend.savedSettings = nil
	w = perform(router, http.MethodPost, "/v1/stores/4/price-settings",
		`{"vendorId": 7, "priceRanges": [{"from": "0", "to": "MAX", "minimumMargin": "92233720368547759"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, backend.savedSettings)
}

func TestCatalogPassThroughRoutes(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	tests := []struct {
		name     string
		path     string
		status   int
		location string
		body     string
	}{
		{name: "vendor", path: "/v1/vendors/5", status: http.StatusOK, body: `{"id": 5, "name": "Acme Supply"}`},
		{name: "missing vendor", path: "/v1/vendors/6", status: http.StatusNotFound},
		{name: "product", path: "/v1/products/11", status: http.StatusOK, body: `{"id": 11, "sku": "A1"}`},
		{name: "bad product list", path: "/v1/products?limit=x", status: http.StatusBadRequest},
		{name: "export", path: "/v1/exports/12", status: http.StatusOK, body: `{"id": 12}`},
		{
			name:     "export download",
			path:     "/v1/exports/12/download",
			status:   http.StatusFound,
			location: "https://catalog.test/export/exports/12/download",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
		})
	}
}
