package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/internal/domain"
	"github.com/jafarshop/storeconfig/internal/repository"
	"github.com/jafarshop/storeconfig/internal/storeconfig"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

// fakeBackend answers the calls a test sets up; everything else fails
type fakeBackend struct {
	Backend

	marketplaces     []domain.Marketplace
	marketplaceCalls int
	store            *domain.StoreRecord
	getErr           error
	saved            *domain.StorePayload
	saveErr          error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{Backend: Unconfigured(fmt.Errorf("unexpected call"))}
}

func (f *fakeBackend) ListMarketplaces(context.Context) ([]domain.Marketplace, error) {
	f.marketplaceCalls++
	return f.marketplaces, nil
}

func (f *fakeBackend) GetStore(_ context.Context, storeID int64) (*domain.StoreRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.store, nil
}

func (f *fakeBackend) UpdateStore(_ context.Context, storeID int64, payload domain.StorePayload) (*domain.StoreRecord, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = &payload
	return &domain.StoreRecord{ID: storeID, Name: payload.Name}, nil
}

func (f *fakeBackend) CreateStore(_ context.Context, payload domain.StorePayload) (*domain.StoreRecord, error) {
	f.saved = &payload
	return &domain.StoreRecord{ID: 100, Name: payload.Name}, nil
}

type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return false, m.getErr
	}
	data, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type fakeEvents struct {
	events    []*domain.ConfigEvent
	createErr error
}

func (f *fakeEvents) Create(_ context.Context, event *domain.ConfigEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) ListByStoreID(_ context.Context, storeID int64, _ int) ([]*domain.ConfigEvent, error) {
	var out []*domain.ConfigEvent
	for _, e := range f.events {
		if e.StoreID == storeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func decodeForm(t *testing.T, body string) storeconfig.Form {
	t.Helper()
	var f storeconfig.Form
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return f
}

const validForm = `{
	"storeInfo": {"storeName": "Acme", "marketplace": "3", "apiKey": "k"},
	"priceSettingsByVendor": [{"vendorId": 5, "purchaseTax": "10", "marketplaceFees": "15",
		"priceRanges": [{"from": "0", "to": "MAX", "margin": "20", "minimumMargin": "3"}]}]
}`

func TestMarketplaceService_CachesList(t *testing.T) {
	backend := newFakeBackend()
	backend.marketplaces = []domain.Marketplace{{ID: 3, Name: "MyDeal", Code: "mydeal"}}
	svc := NewMarketplaceService(backend, &memCache{}, time.Minute, zap.NewNop())

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.marketplaceCalls)

	mp, err := svc.Find(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "mydeal", mp.Code)

	_, err = svc.Find(context.Background(), 9)
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestMarketplaceService_CacheFailureFallsBack(t *testing.T) {
	backend := newFakeBackend()
	backend.marketplaces = []domain.Marketplace{{ID: 1, Name: "Catch", Code: "catch"}}
	svc := NewMarketplaceService(backend, &memCache{getErr: fmt.Errorf("redis down")}, time.Minute, zap.NewNop())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMarketplaceService_CreateValidates(t *testing.T) {
	svc := NewMarketplaceService(newFakeBackend(), nil, time.Minute, zap.NewNop())

	_, err := svc.Create(context.Background(), " ", "")

	var v *errors.ErrValidation
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Issues, 2)
}

func TestStoreConfigService_GetEditableNotFound(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = &catalog.APIError{StatusCode: http.StatusNotFound, Message: "API call failed: 404 Not Found"}
	svc := NewStoreConfigService(backend, nil, nil, zap.NewNop())

	_, err := svc.GetEditable(context.Background(), 4)

	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "store", nf.Resource)
	assert.Equal(t, "4", nf.ID)
}

func TestStoreConfigService_GetEditable(t *testing.T) {
	backend := newFakeBackend()
	backend.store = &domain.StoreRecord{ID: 4, Name: "Acme", MarketplaceName: "Catch"}
	svc := NewStoreConfigService(backend, nil, nil, zap.NewNop())

	store, err := svc.GetEditable(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Acme", store.StoreInfo.StoreName)
	assert.Equal(t, "Catch", store.Marketplace)
}

func TestStoreConfigService_UpdateRejectsInvalidForm(t *testing.T) {
	backend := newFakeBackend()
	svc := NewStoreConfigService(backend, nil, nil, zap.NewNop())

	form := decodeForm(t, `{"storeInfo": {"storeName": "", "marketplace": "x"}}`)
	_, err := svc.Update(context.Background(), 4, form)

	var v *errors.ErrValidation
	require.ErrorAs(t, err, &v)
	assert.Nil(t, backend.saved, "invalid forms never reach the backend")
}

func TestStoreConfigService_UpdateFillsMarketplaceAndAudits(t *testing.T) {
	backend := newFakeBackend()
	backend.marketplaces = []domain.Marketplace{{ID: 3, Name: "MyDeal", Code: "mydeal"}}
	events := &fakeEvents{}
	marketplaces := NewMarketplaceService(backend, nil, time.Minute, zap.NewNop())
	svc := NewStoreConfigService(backend, marketplaces, &repository.Repositories{ConfigEvent: events}, zap.NewNop())

	store, err := svc.Update(context.Background(), 4, decodeForm(t, validForm))
	require.NoError(t, err)
	assert.Equal(t, int64(4), store.ID)

	require.NotNil(t, backend.saved)
	require.NotNil(t, backend.saved.Settings, "MyDeal is resolved from the marketplace id")
	assert.Equal(t, int64(300), backend.saved.PriceSettingsByVendor[0].PriceRanges[0].MinimumMarginCents)

	require.Len(t, events.events, 1)
	assert.Equal(t, domain.ConfigEventUpdated, events.events[0].EventType)
	assert.Equal(t, 1, events.events[0].EventData["price_vendors"])
	assert.Equal(t, true, events.events[0].EventData["mydeal"])
}

func TestStoreConfigService_AuditFailureDoesNotFailSave(t *testing.T) {
	backend := newFakeBackend()
	events := &fakeEvents{createErr: fmt.Errorf("db down")}
	svc := NewStoreConfigService(backend, nil, &repository.Repositories{ConfigEvent: events}, zap.NewNop())

	store, err := svc.Create(context.Background(), decodeForm(t, validForm))
	require.NoError(t, err)
	assert.Equal(t, int64(100), store.ID)
}

func TestStoreConfigService_UpdateBackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.saveErr = &catalog.APIError{StatusCode: http.StatusBadRequest, Message: "vendor 5 does not exist"}
	svc := NewStoreConfigService(backend, nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), 4, decodeForm(t, validForm))

	var apiErr *catalog.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "vendor 5 does not exist", apiErr.Error())
}

func TestStoreConfigService_Preview(t *testing.T) {
	svc := NewStoreConfigService(newFakeBackend(), nil, nil, zap.NewNop())

	form := decodeForm(t, `{
		"storeInfo": {"storeName": "Acme", "marketplace": "3"},
		"priceSettingsByVendor": [{"vendorId": 5, "priceRanges": [{"from": "abc", "to": "MAX"}]}]
	}`)
	result, err := svc.Preview(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Payload.PriceSettingsByVendor[0].PriceRanges[0].FromValue)
	require.NotEmpty(t, result.Issues)
	assert.True(t, strings.Contains(strings.Join(result.Issues, ";"), "range 1"))
}

func TestStoreConfigService_EventsNeedDatabase(t *testing.T) {
	svc := NewStoreConfigService(newFakeBackend(), nil, nil, zap.NewNop())

	_, err := svc.Events(context.Background(), 4, 10)

	var nc *errors.ErrNotConfigured
	assert.ErrorAs(t, err, &nc)
}

func TestFilterFrom(t *testing.T) {
	tests := []struct {
		name        string
		marketplace string
		store       string
		want        dashboard.Filter
	}{
		{"none", "", "", dashboard.Filter{}},
		{"all marketplaces", dashboard.AllValue, "", dashboard.Filter{}},
		{"both", "3", "12", dashboard.Filter{MarketplaceID: "3", StoreID: "12"}},
		{"store without marketplace", "", "12", dashboard.Filter{StoreID: "12"}},
		{"all stores", "3", dashboard.AllValue, dashboard.Filter{MarketplaceID: "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterFrom(tt.marketplace, tt.store))
		})
	}
}

func TestOperationsService_Validation(t *testing.T) {
	svc := NewOperationsService(newFakeBackend(), zap.NewNop())

	_, err := svc.LatestExportURL(3, "full")
	var v *errors.ErrValidation
	assert.ErrorAs(t, err, &v)

	_, err = svc.UploadProducts(context.Background(), 0, 0, "p.csv", strings.NewReader(""))
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Issues, 2)
}

// vendorBackend serves vendor and price settings calls from memory
type vendorBackend struct {
	*fakeBackend

	vendors       map[int64]*catalog.Vendor
	savedVendor   *catalog.Vendor
	savedSettings *domain.VendorPricePayload
}

func newVendorBackend() *vendorBackend {
	return &vendorBackend{
		fakeBackend: newFakeBackend(),
		vendors:     map[int64]*catalog.Vendor{},
	}
}

func (f *vendorBackend) GetVendor(_ context.Context, vendorID int64) (*catalog.Vendor, error) {
	v, ok := f.vendors[vendorID]
	if !ok {
		return nil, &catalog.APIError{StatusCode: http.StatusNotFound, Message: "API call failed: 404 Not Found"}
	}
	return v, nil
}

func (f *vendorBackend) CreateVendor(_ context.Context, v catalog.Vendor) (*catalog.Vendor, error) {
	f.savedVendor = &v
	v.ID = 9
	return &v, nil
}

func (f *vendorBackend) ListVendors(context.Context) ([]dashboard.VendorRow, error) {
	return nil, nil
}

func (f *vendorBackend) CreateStorePriceSettings(_ context.Context, _ int64, settings domain.VendorPricePayload) (json.RawMessage, error) {
	f.savedSettings = &settings
	return json.RawMessage(`{"id": 1}`), nil
}

func (f *vendorBackend) GetExport(_ context.Context, exportID int64) (json.RawMessage, error) {
	if exportID != 12 {
		return nil, &catalog.APIError{StatusCode: http.StatusNotFound, Message: "API call failed: 404 Not Found"}
	}
	return json.RawMessage(`{"id": 12}`), nil
}

func (f *vendorBackend) DownloadExportURL(exportID int64) string {
	return fmt.Sprintf("https://catalog.test/export/exports/%d/download", exportID)
}

func TestVendorService(t *testing.T) {
	backend := newVendorBackend()
	backend.vendors[5] = &catalog.Vendor{ID: 5, Name: "Acme"}
	svc := NewVendorService(backend, zap.NewNop())
	ctx := context.Background()

	vendor, err := svc.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Acme", vendor.Name)

	_, err = svc.Get(ctx, 6)
	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "vendor", nf.Resource)

	created, err := svc.Create(ctx, VendorRequest{Name: "  Globex ", Code: "globex"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "Globex", backend.savedVendor.Name)

	_, err = svc.Create(ctx, VendorRequest{Name: " "})
	var v *errors.ErrValidation
	require.ErrorAs(t, err, &v)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestStoreConfigService_AddVendorPriceSettings(t *testing.T) {
	backend := newVendorBackend()
	svc := NewStoreConfigService(backend, nil, nil, zap.NewNop())
	ctx := context.Background()

	var vendor storeconfig.VendorPriceForm
	require.NoError(t, json.Unmarshal([]byte(`{"vendorId": "7", "purchaseTax": "5",
		"priceRanges": [{"from": "0", "to": "MAX", "minimumMargin": "4"}]}`), &vendor))

	_, err := svc.AddVendorPriceSettings(ctx, 4, vendor)
	require.NoError(t, err)
	require.NotNil(t, backend.savedSettings)
	assert.Equal(t, int64(7), backend.savedSettings.VendorID)
	assert.Equal(t, int64(400), backend.savedSettings.PriceRanges[0].MinimumMarginCents)

	backend.savedSettings = nil
	require.NoError(t, json.Unmarshal([]byte(`{"vendorId": 7,
		"priceRanges": [{"from": "0", "to": "MAX", "minimumMargin": "92233720368547759"}]}`), &vendor))
	_, err = svc.AddVendorPriceSettings(ctx, 4, vendor)
	var v *errors.ErrValidation
	require.ErrorAs(t, err, &v)
	assert.Nil(t, backend.savedSettings)
}

func TestOperationsService_Exports(t *testing.T) {
	svc := NewOperationsService(newVendorBackend(), zap.NewNop())
	ctx := context.Background()

	target, err := svc.ExportDownloadURL(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.test/export/exports/12/download", target)

	_, err = svc.ExportDownloadURL(ctx, 13)
	var nf *errors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "export", nf.Resource)
}

func TestOperationsService_CreateProductNeedsObject(t *testing.T) {
	svc := NewOperationsService(newFakeBackend(), zap.NewNop())

	for _, body := range []string{`[]`, `{}`, `"sku"`} {
		_, err := svc.CreateProduct(context.Background(), json.RawMessage(body))
		var v *errors.ErrValidation
		assert.ErrorAs(t, err, &v, body)
	}
}
