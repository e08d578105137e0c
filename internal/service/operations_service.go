package service

import (
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/domain"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

// OperationsService starts the backend jobs a store operator triggers:
// product uploads, scrapes and exports. File contents are passed through
// unread.
type OperationsService struct {
	backend OperationsBackend
	logger  *zap.Logger
}

// NewOperationsService creates a new operations service
func NewOperationsService(backend OperationsBackend, logger *zap.Logger) *OperationsService {
	return &OperationsService{
		backend: backend,
		logger:  logger,
	}
}

// ListProducts returns the backend product list for the given filters
func (s *OperationsService) ListProducts(ctx context.Context, params catalog.ProductListParams) (json.RawMessage, error) {
	return s.backend.ListProducts(ctx, params)
}

func (s *OperationsService) GetProduct(ctx context.Context, productID int64) (json.RawMessage, error) {
	out, err := s.backend.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product", productID)
	}
	return out, nil
}

// CreateProduct hands a product document to the backend. Only the shape of
// the body is checked here; the backend owns product fields.
func (s *OperationsService) CreateProduct(ctx context.Context, product json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(product, &fields); err != nil || len(fields) == 0 {
		v := &errors.ErrValidation{}
		v.Add("product must be a non-empty JSON object")
		return nil, v
	}
	return s.backend.CreateProduct(ctx, product)
}

func (s *OperationsService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.backend.DeleteProduct(ctx, productID); err != nil {
		return notFound(err, "product", productID)
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", productID))
	return nil
}

// UploadProducts streams a product file to the backend
func (s *OperationsService) UploadProducts(ctx context.Context, storeID, vendorID int64, fileName string, file io.Reader) (json.RawMessage, error) {
	v := &errors.ErrValidation{}
	if storeID <= 0 {
		v.Add("store_id is required")
	}
	if vendorID <= 0 {
		v.Add("vendor_id is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	s.logger.Info("Uploading products",
		zap.Int64("store_id", storeID),
		zap.Int64("vendor_id", vendorID),
		zap.String("file", fileName),
	)
	return s.backend.UploadProducts(ctx, catalog.ProductUpload{
		FileName: fileName,
		File:     file,
		VendorID: vendorID,
		StoreID:  storeID,
	})
}

// StartScrape starts a scrape of a store, optionally for one vendor
func (s *OperationsService) StartScrape(ctx context.Context, storeID int64, req ScrapeRequest) (json.RawMessage, error) {
	return s.backend.StartScrape(ctx, catalog.ScrapeRequest{
		StoreID:  storeID,
		VendorID: req.VendorID,
	})
}

func (s *OperationsService) ScrapeStatus(ctx context.Context, scrapeID int64) (json.RawMessage, error) {
	out, err := s.backend.GetScrapeStatus(ctx, scrapeID)
	if err != nil {
		return nil, notFound(err, "scrape", scrapeID)
	}
	return out, nil
}

// GenerateExport starts an export for a store
func (s *OperationsService) GenerateExport(ctx context.Context, storeID int64, req ExportRequest) (json.RawMessage, error) {
	return s.backend.GenerateExport(ctx, catalog.ExportRequest{
		StoreID:    storeID,
		VendorID:   req.VendorID,
		ExportType: req.ExportType,
	})
}

func (s *OperationsService) ListExports(ctx context.Context, storeID int64, limit int) (json.RawMessage, error) {
	return s.backend.ListExports(ctx, storeID, limit)
}

func (s *OperationsService) GetExport(ctx context.Context, exportID int64) (json.RawMessage, error) {
	out, err := s.backend.GetExport(ctx, exportID)
	if err != nil {
		return nil, notFound(err, "export", exportID)
	}
	return out, nil
}

// ExportDownloadURL resolves where an export's file can be downloaded. The
// export is looked up first so unknown ids answer not found.
func (s *OperationsService) ExportDownloadURL(ctx context.Context, exportID int64) (string, error) {
	if _, err := s.GetExport(ctx, exportID); err != nil {
		return "", err
	}
	return s.backend.DownloadExportURL(exportID), nil
}

// LatestExportURL resolves where the latest export of a kind can be
// downloaded
func (s *OperationsService) LatestExportURL(storeID int64, kind string) (string, error) {
	k := domain.ExportKind(kind)
	if !k.IsValid() {
		v := &errors.ErrValidation{}
		v.Add("export kind must be %q or %q, got %q", domain.ExportKindPrice, domain.ExportKindInventory, kind)
		return "", v
	}
	return s.backend.LatestExportURL(storeID, k)
}
