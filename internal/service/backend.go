package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/internal/domain"
	apperrors "github.com/jafarshop/storeconfig/pkg/errors"
)

// StoreBackend is the part of the catalog backend that owns stores
type StoreBackend interface {
	GetStore(ctx context.Context, storeID int64) (*domain.StoreRecord, error)
	CreateStore(ctx context.Context, payload domain.StorePayload) (*domain.StoreRecord, error)
	UpdateStore(ctx context.Context, storeID int64, payload domain.StorePayload) (*domain.StoreRecord, error)
	DeleteStore(ctx context.Context, storeID int64) error
	ListStores(ctx context.Context, params catalog.StoreListParams) ([]dashboard.StoreRow, error)
	GetStorePriceSettings(ctx context.Context, storeID int64) (json.RawMessage, error)
	CreateStorePriceSettings(ctx context.Context, storeID int64, settings domain.VendorPricePayload) (json.RawMessage, error)
}

// MarketplaceBackend lists and creates marketplaces
type MarketplaceBackend interface {
	ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error)
	CreateMarketplace(ctx context.Context, m domain.Marketplace) (*domain.Marketplace, error)
}

// VendorBackend manages the vendors rule sets are keyed on
type VendorBackend interface {
	ListVendors(ctx context.Context) ([]dashboard.VendorRow, error)
	GetVendor(ctx context.Context, vendorID int64) (*catalog.Vendor, error)
	CreateVendor(ctx context.Context, v catalog.Vendor) (*catalog.Vendor, error)
	UpdateVendor(ctx context.Context, vendorID int64, v catalog.Vendor) (*catalog.Vendor, error)
	DeleteVendor(ctx context.Context, vendorID int64) error
	GetVendorPrices(ctx context.Context, vendorID int64) (json.RawMessage, error)
}

// OperationsBackend triggers the backend jobs the console starts and reads
// the products and exports they produce
type OperationsBackend interface {
	ListProducts(ctx context.Context, params catalog.ProductListParams) (json.RawMessage, error)
	GetProduct(ctx context.Context, productID int64) (json.RawMessage, error)
	CreateProduct(ctx context.Context, product json.RawMessage) (json.RawMessage, error)
	DeleteProduct(ctx context.Context, productID int64) error
	UploadProducts(ctx context.Context, upload catalog.ProductUpload) (json.RawMessage, error)
	StartScrape(ctx context.Context, scrape catalog.ScrapeRequest) (json.RawMessage, error)
	GetScrapeStatus(ctx context.Context, scrapeID int64) (json.RawMessage, error)
	GenerateExport(ctx context.Context, export catalog.ExportRequest) (json.RawMessage, error)
	ListExports(ctx context.Context, storeID int64, limit int) (json.RawMessage, error)
	GetExport(ctx context.Context, exportID int64) (json.RawMessage, error)
	DownloadExportURL(exportID int64) string
	LatestExportURL(storeID int64, kind domain.ExportKind) (string, error)
}

// Backend is everything the service layer needs from the catalog
type Backend interface {
	StoreBackend
	MarketplaceBackend
	VendorBackend
	OperationsBackend
	dashboard.Source
}

var _ Backend = (*catalog.Client)(nil)

// notFound turns a backend 404 into a typed not-found error
func notFound(err error, resource string, id int64) error {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return &apperrors.ErrNotFound{Resource: resource, ID: strconv.FormatInt(id, 10)}
	}
	return err
}

// unconfigured serves every call with the configuration error when no
// catalog base URL is set, so the API still starts and reports it.
type unconfigured struct {
	err error
}

// Unconfigured returns a backend that fails every call with err
func Unconfigured(err error) Backend {
	return unconfigured{err: err}
}

func (u unconfigured) GetStore(context.Context, int64) (*domain.StoreRecord, error) {
	return nil, u.err
}

func (u unconfigured) CreateStore(context.Context, domain.StorePayload) (*domain.StoreRecord, error) {
	return nil, u.err
}

func (u unconfigured) UpdateStore(context.Context, int64, domain.StorePayload) (*domain.StoreRecord, error) {
	return nil, u.err
}

func (u unconfigured) DeleteStore(context.Context, int64) error {
	return u.err
}

func (u unconfigured) ListStores(context.Context, catalog.StoreListParams) ([]dashboard.StoreRow, error) {
	return nil, u.err
}

func (u unconfigured) GetStorePriceSettings(context.Context, int64) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) CreateStorePriceSettings(context.Context, int64, domain.VendorPricePayload) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) ListMarketplaces(context.Context) ([]domain.Marketplace, error) {
	return nil, u.err
}

func (u unconfigured) CreateMarketplace(context.Context, domain.Marketplace) (*domain.Marketplace, error) {
	return nil, u.err
}

func (u unconfigured) ListVendors(context.Context) ([]dashboard.VendorRow, error) {
	return nil, u.err
}

func (u unconfigured) GetVendor(context.Context, int64) (*catalog.Vendor, error) {
	return nil, u.err
}

func (u unconfigured) CreateVendor(context.Context, catalog.Vendor) (*catalog.Vendor, error) {
	return nil, u.err
}

func (u unconfigured) UpdateVendor(context.Context, int64, catalog.Vendor) (*catalog.Vendor, error) {
	return nil, u.err
}

func (u unconfigured) DeleteVendor(context.Context, int64) error {
	return u.err
}

func (u unconfigured) GetVendorPrices(context.Context, int64) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) ListProducts(context.Context, catalog.ProductListParams) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) GetProduct(context.Context, int64) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) CreateProduct(context.Context, json.RawMessage) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) DeleteProduct(context.Context, int64) error {
	return u.err
}

func (u unconfigured) UploadProducts(context.Context, catalog.ProductUpload) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) StartScrape(context.Context, catalog.ScrapeRequest) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) GetScrapeStatus(context.Context, int64) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) GenerateExport(context.Context, catalog.ExportRequest) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) ListExports(context.Context, int64, int) (json.RawMessage, error) {
	return nil, u.err
}

func (u unconfigured) GetExport(context.Context, int64) (json.RawMessage, error) {
	return nil, u.err
}

// DownloadExportURL has no error to report; the handler resolves the export
// first, which fails with the configuration error
func (u unconfigured) DownloadExportURL(int64) string {
	return ""
}

func (u unconfigured) LatestExportURL(int64, domain.ExportKind) (string, error) {
	return "", u.err
}

func (u unconfigured) Summary(context.Context, url.Values) (*dashboard.Summary, error) {
	return nil, u.err
}

func (u unconfigured) Stores(context.Context, url.Values) ([]dashboard.StoreRow, error) {
	return nil, u.err
}

func (u unconfigured) Vendors(context.Context, url.Values) ([]dashboard.VendorRow, error) {
	return nil, u.err
}
