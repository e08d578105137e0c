package storeconfig

import (
	"github.com/jafarshop/storeconfig/internal/coerce"
	"github.com/jafarshop/storeconfig/internal/domain"
)

// VendorPricePayload converts one vendor's pricing rules to the persisted
// shape, as a full save would
func VendorPricePayload(v VendorPriceForm) domain.VendorPricePayload {
	return vendorPriceToPayload(v)
}

func vendorPriceToPayload(v VendorPriceForm) domain.VendorPricePayload {
	ranges := make([]domain.PriceRangePayload, 0, len(v.PriceRanges))
	for _, r := range v.PriceRanges {
		ranges = append(ranges, priceRangeToPayload(r))
	}

	return domain.VendorPricePayload{
		VendorID:                  vendorID(v.VendorID),
		PurchaseTaxPercentage:     coerce.Float(v.PurchaseTax.String(), 0),
		MarketplaceFeesPercentage: coerce.Float(v.MarketplaceFees.String(), 0),
		PriceRanges:               ranges,
	}
}

func vendorPriceFromRecord(s domain.VendorPriceRecord) VendorPriceForm {
	ranges := make([]PriceRangeForm, 0, len(s.PriceRanges))
	for _, r := range s.PriceRanges {
		ranges = append(ranges, priceRangeFromRecord(r))
	}

	fees := s.MarketplaceFeesPercentage
	if !fees.Valid() {
		fees = s.MarketplaceFeePercentage
	}

	return VendorPriceForm{
		VendorID:        recordVendorID(s.VendorRelID, s.VendorID),
		PurchaseTax:     domain.NumericText(s.PurchaseTaxPercentage.TextOr("0")),
		MarketplaceFees: domain.NumericText(fees.TextOr("0")),
		PriceRanges:     ranges,
	}
}

func vendorInventoryToPayload(v VendorInventoryForm) domain.VendorInventoryPayload {
	ranges := make([]domain.InventoryRangePayload, 0, len(v.Ranges))
	for _, r := range v.Ranges {
		ranges = append(ranges, inventoryRangeToPayload(r))
	}

	return domain.VendorInventoryPayload{
		VendorID:        vendorID(v.VendorID),
		InventoryRanges: ranges,
	}
}

func vendorInventoryFromRecord(s domain.VendorInventoryRecord) VendorInventoryForm {
	ranges := make([]InventoryRangeForm, 0, len(s.InventoryRanges))
	for _, r := range s.InventoryRanges {
		ranges = append(ranges, inventoryRangeFromRecord(r))
	}

	return VendorInventoryForm{
		VendorID: recordVendorID(s.VendorRelID, s.VendorID),
		Ranges:   ranges,
	}
}

func vendorID(n domain.Numeric) int64 {
	return coerce.Int(n.String(), 0)
}

// recordVendorID prefers the joined vendor__id column over vendor_id
func recordVendorID(rel, id domain.Numeric) domain.Numeric {
	if rel.Truthy() {
		return domain.NumericInt(vendorID(rel))
	}
	return domain.NumericInt(vendorID(id))
}
