package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/dashboard"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

// VendorService manages the vendors whose rule sets a store configures
type VendorService struct {
	backend VendorBackend
	logger  *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(backend VendorBackend, logger *zap.Logger) *VendorService {
	return &VendorService{
		backend: backend,
		logger:  logger,
	}
}

// List returns every vendor with its dashboard counts
func (s *VendorService) List(ctx context.Context) ([]dashboard.VendorRow, error) {
	rows, err := s.backend.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Normalize()
	}
	if rows == nil {
		rows = []dashboard.VendorRow{}
	}
	return rows, nil
}

func (s *VendorService) Get(ctx context.Context, vendorID int64) (*catalog.Vendor, error) {
	vendor, err := s.backend.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, notFound(err, "vendor", vendorID)
	}
	return vendor, nil
}

// Create registers a vendor; the name is required
func (s *VendorService) Create(ctx context.Context, req VendorRequest) (*catalog.Vendor, error) {
	vendor, err := req.vendor()
	if err != nil {
		return nil, err
	}

	created, err := s.backend.CreateVendor(ctx, vendor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vendor created", zap.Int64("vendor_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *VendorService) Update(ctx context.Context, vendorID int64, req VendorRequest) (*catalog.Vendor, error) {
	vendor, err := req.vendor()
	if err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdateVendor(ctx, vendorID, vendor)
	if err != nil {
		return nil, notFound(err, "vendor", vendorID)
	}
	return updated, nil
}

func (s *VendorService) Delete(ctx context.Context, vendorID int64) error {
	if err := s.backend.DeleteVendor(ctx, vendorID); err != nil {
		return notFound(err, "vendor", vendorID)
	}
	s.logger.Info("Vendor deleted", zap.Int64("vendor_id", vendorID))
	return nil
}

// Prices returns the vendor's price list as the backend reports it
func (s *VendorService) Prices(ctx context.Context, vendorID int64) (json.RawMessage, error) {
	out, err := s.backend.GetVendorPrices(ctx, vendorID)
	if err != nil {
		return nil, notFound(err, "vendor", vendorID)
	}
	return out, nil
}

func (r VendorRequest) vendor() (catalog.Vendor, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		v := &errors.ErrValidation{}
		v.Add("name is required")
		return catalog.Vendor{}, v
	}
	return catalog.Vendor{Name: name, Code: strings.TrimSpace(r.Code)}, nil
}
