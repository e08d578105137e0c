package storeconfig

import (
	"encoding/json"

	"github.com/jafarshop/storeconfig/internal/domain"
)

// StoreInfo holds the identity fields of the store form. Form fields are
// string-typed in the UI; Marketplace carries the marketplace id.
type StoreInfo struct {
	StoreName       string         `json:"storeName"`
	Marketplace     domain.Numeric `json:"marketplace"`
	APIKey          string         `json:"apiKey"`
	MarketplaceName string         `json:"marketplaceName"`
	MarketplaceCode string         `json:"marketplaceCode"`
}

// VendorPriceForm is one vendor's editable pricing rules. VendorID may be
// a number or the string value of a select.
type VendorPriceForm struct {
	VendorID        domain.Numeric   `json:"vendorId"`
	PurchaseTax     domain.Numeric   `json:"purchaseTax"`
	MarketplaceFees domain.Numeric   `json:"marketplaceFees"`
	PriceRanges     []PriceRangeForm `json:"priceRanges"`
}

// PriceRangeForm is an editable pricing tier. MinimumMargin is in major
// currency units.
type PriceRangeForm struct {
	From                      domain.Numeric `json:"from"`
	To                        domain.Numeric `json:"to"`
	Margin                    domain.Numeric `json:"margin"`
	MinimumMargin             domain.Numeric `json:"minimumMargin"`
	DontPayDiscountPercentage domain.Numeric `json:"dontPayDiscountPercentage"`
}

// VendorInventoryForm is one vendor's editable inventory rules. The UI
// keeps inventory tiers under the same key as price tiers.
type VendorInventoryForm struct {
	VendorID domain.Numeric       `json:"vendorId"`
	Ranges   []InventoryRangeForm `json:"priceRanges"`
}

// InventoryRangeForm is an editable inventory tier
type InventoryRangeForm struct {
	From           domain.Numeric `json:"from"`
	To             domain.Numeric `json:"to"`
	MultipliedWith domain.Numeric `json:"multipliedWith"`
}

// MyDealForm holds the MyDeal template upload ids
type MyDealForm struct {
	PriceTemplateUploadID     domain.Numeric `json:"priceTemplateUploadId"`
	InventoryTemplateUploadID domain.Numeric `json:"inventoryTemplateUploadId"`
}

// Form is the editable configuration submitted on save
type Form struct {
	StoreInfo                 StoreInfo             `json:"storeInfo"`
	PriceSettingsByVendor     []VendorPriceForm     `json:"priceSettingsByVendor"`
	InventorySettingsByVendor []VendorInventoryForm `json:"inventorySettingsByVendor"`
	MyDealSettings            *MyDealForm           `json:"mydealSettings"`
}

// EditableStore is a store shaped for the configuration UI
type EditableStore struct {
	ID                        int64                      `json:"id"`
	Name                      string                     `json:"name"`
	Marketplace               string                     `json:"marketplace"`
	MarketplaceID             domain.Numeric             `json:"marketplace_id"`
	IsActive                  bool                       `json:"is_active"`
	CreatedAt                 string                     `json:"created_at"`
	StoreInfo                 StoreInfo                  `json:"storeInfo"`
	PriceSettingsByVendor     []VendorPriceForm          `json:"priceSettingsByVendor"`
	InventorySettingsByVendor []VendorInventoryForm      `json:"inventorySettingsByVendor"`
	Settings                  map[string]json.RawMessage `json:"settings"`
	MyDealSettings            *MyDealForm                `json:"mydealSettings"`
}

// Form returns the editable parts of the store as a save form
func (s EditableStore) Form() Form {
	return Form{
		StoreInfo:                 s.StoreInfo,
		PriceSettingsByVendor:     s.PriceSettingsByVendor,
		InventorySettingsByVendor: s.InventorySettingsByVendor,
		MyDealSettings:            s.MyDealSettings,
	}
}

// Payload runs the outbound transform over the form
func (f Form) Payload() domain.StorePayload {
	return Outbound(f.StoreInfo, f.PriceSettingsByVendor, f.InventorySettingsByVendor, f.MyDealSettings)
}
