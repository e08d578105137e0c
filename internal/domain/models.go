package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Marketplace represents a sales channel stores are tied to
type Marketplace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// StorePayload is the persisted store shape sent to the catalog backend on save
type StorePayload struct {
	Name                      string                   `json:"name"`
	MarketplaceID             int64                    `json:"marketplace_id"`
	APIKeyEnc                 string                   `json:"api_key_enc"`
	PriceSettingsByVendor     []VendorPricePayload     `json:"price_settings_by_vendor"`
	InventorySettingsByVendor []VendorInventoryPayload `json:"inventory_settings_by_vendor"`
	Settings                  *StoreSettingsPayload    `json:"settings,omitempty"`
}

// VendorPricePayload holds one vendor's pricing rules
type VendorPricePayload struct {
	VendorID                  int64               `json:"vendor_id"`
	PurchaseTaxPercentage     float64             `json:"purchase_tax_percentage"`
	MarketplaceFeesPercentage float64             `json:"marketplace_fees_percentage"`
	PriceRanges               []PriceRangePayload `json:"price_ranges"`
}

// PriceRangePayload is one pricing tier
type PriceRangePayload struct {
	FromValue                 float64    `json:"from_value"`
	ToValue                   RangeBound `json:"to_value"`
	MarginPercentage          float64    `json:"margin_percentage"`
	MinimumMarginCents        int64      `json:"minimum_margin_cents"`
	DontPayDiscountPercentage float64    `json:"dont_pay_discount_percentage"`
}

// VendorInventoryPayload holds one vendor's inventory rules
type VendorInventoryPayload struct {
	VendorID        int64                   `json:"vendor_id"`
	InventoryRanges []InventoryRangePayload `json:"inventory_ranges"`
}

// InventoryRangePayload is one inventory tier
type InventoryRangePayload struct {
	FromValue  float64    `json:"from_value"`
	ToValue    RangeBound `json:"to_value"`
	Multiplier float64    `json:"multiplier"`
}

// StoreSettingsPayload is the feature-keyed settings map
type StoreSettingsPayload struct {
	MyDeal *MyDealSettings `json:"mydeal,omitempty"`
}

// MyDealSettings tracks the templates MyDeal exports are generated from.
// Upload ids are opaque; an unset id marshals as null.
type MyDealSettings struct {
	PriceTemplateUploadID     Numeric `json:"price_template_upload_id"`
	InventoryTemplateUploadID Numeric `json:"inventory_template_upload_id"`
}

// StoreRecord is a store as returned by the catalog backend. The
// marketplace may be nested under a relation or flattened into
// marketplace_* fields, and rule collections may use either key.
type StoreRecord struct {
	ID                        int64                      `json:"id"`
	Name                      string                     `json:"name"`
	Marketplace               *MarketplaceRef            `json:"marketplace"`
	MarketplaceID             Numeric                    `json:"marketplace_id"`
	MarketplaceName           string                     `json:"marketplace_name"`
	MarketplaceCode           string                     `json:"marketplace_code"`
	IsActive                  bool                       `json:"is_active"`
	CreatedAt                 string                     `json:"created_at"`
	APIKeyEnc                 string                     `json:"api_key_enc"`
	PriceSettings             []VendorPriceRecord        `json:"price_settings"`
	PriceSettingsByVendor     []VendorPriceRecord        `json:"price_settings_by_vendor"`
	InventorySettings         []VendorInventoryRecord    `json:"inventory_settings"`
	InventorySettingsByVendor []VendorInventoryRecord    `json:"inventory_settings_by_vendor"`
	Settings                  map[string]json.RawMessage `json:"settings"`
}

// MarketplaceRef is the nested marketplace relation of a store record
type MarketplaceRef struct {
	ID   Numeric `json:"id"`
	Name string  `json:"name"`
	Code string  `json:"code"`
}

// UnmarshalJSON ignores a bare foreign key in place of the relation object
func (m *MarketplaceRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '{' {
		*m = MarketplaceRef{}
		return nil
	}
	type plain MarketplaceRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = MarketplaceRef(p)
	return nil
}

// VendorPriceRecord is a vendor's stored pricing rules
type VendorPriceRecord struct {
	VendorID                  Numeric            `json:"vendor_id"`
	VendorRelID               Numeric            `json:"vendor__id"`
	PurchaseTaxPercentage     Numeric            `json:"purchase_tax_percentage"`
	MarketplaceFeesPercentage Numeric            `json:"marketplace_fees_percentage"`
	MarketplaceFeePercentage  Numeric            `json:"marketplace_fee_percentage"`
	PriceRanges               []PriceRangeRecord `json:"price_ranges"`
}

// PriceRangeRecord is a stored pricing tier
type PriceRangeRecord struct {
	FromValue                 Numeric    `json:"from_value"`
	ToValue                   RangeBound `json:"to_value"`
	MarginPercentage          Numeric    `json:"margin_percentage"`
	MinimumMarginCents        Numeric    `json:"minimum_margin_cents"`
	DontPayDiscountPercentage Numeric    `json:"dont_pay_discount_percentage"`
}

// VendorInventoryRecord is a vendor's stored inventory rules
type VendorInventoryRecord struct {
	VendorID        Numeric                `json:"vendor_id"`
	VendorRelID     Numeric                `json:"vendor__id"`
	InventoryRanges []InventoryRangeRecord `json:"inventory_ranges"`
}

// InventoryRangeRecord is a stored inventory tier
type InventoryRangeRecord struct {
	FromValue  Numeric    `json:"from_value"`
	ToValue    RangeBound `json:"to_value"`
	Multiplier Numeric    `json:"multiplier"`
}

// ConfigEvent is an audit entry for a store configuration change
type ConfigEvent struct {
	ID        uuid.UUID              `json:"id"`
	StoreID   int64                  `json:"store_id"`
	EventType ConfigEventType        `json:"event_type"`
	EventData map[string]interface{} `json:"event_data"` // JSONB
	CreatedAt time.Time              `json:"created_at"`
}
