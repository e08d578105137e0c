package service

import (
	"github.com/jafarshop/storeconfig/internal/domain"
)

// PreviewResult is the payload a save would send and what would block it
type PreviewResult struct {
	Payload domain.StorePayload `json:"payload"`
	Issues  []string            `json:"issues"`
}

// CreateMarketplaceRequest represents the marketplace creation payload
type CreateMarketplaceRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// ScrapeRequest represents a scrape trigger for a store
type ScrapeRequest struct {
	VendorID int64 `json:"vendor_id"`
}

// ExportRequest represents an export trigger for a store
type ExportRequest struct {
	VendorID   int64  `json:"vendor_id"`
	ExportType string `json:"export_type"`
}

// VendorRequest represents a vendor create or update payload
type VendorRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
