// Package storeconfig maps store configuration between the persisted shape
// stored by the catalog backend and the editable shape used by the UI.
// Neither direction fails: malformed numbers fall back to their defaults.
package storeconfig

import (
	"encoding/json"
	"strings"

	"github.com/jafarshop/storeconfig/internal/coerce"
	"github.com/jafarshop/storeconfig/internal/domain"
)

const mydealSettingsKey = "mydeal"

// Outbound builds the persisted payload from the editable form. Rule
// collections are rebuilt in full.
func Outbound(
	info StoreInfo,
	price []VendorPriceForm,
	inventory []VendorInventoryForm,
	mydeal *MyDealForm,
) domain.StorePayload {
	payload := domain.StorePayload{
		Name:                      info.StoreName,
		MarketplaceID:             coerce.Int(info.Marketplace.String(), 0),
		APIKeyEnc:                 info.APIKey,
		PriceSettingsByVendor:     make([]domain.VendorPricePayload, 0, len(price)),
		InventorySettingsByVendor: make([]domain.VendorInventoryPayload, 0, len(inventory)),
	}

	for _, v := range price {
		payload.PriceSettingsByVendor = append(payload.PriceSettingsByVendor, vendorPriceToPayload(v))
	}
	for _, v := range inventory {
		payload.InventorySettingsByVendor = append(payload.InventorySettingsByVendor, vendorInventoryToPayload(v))
	}

	// MyDeal settings only travel with MyDeal stores or when explicitly given
	if domain.IsMyDeal(info.MarketplaceName, info.MarketplaceCode) || mydeal != nil {
		settings := &domain.MyDealSettings{}
		if mydeal != nil {
			settings.PriceTemplateUploadID = uploadID(mydeal.PriceTemplateUploadID)
			settings.InventoryTemplateUploadID = uploadID(mydeal.InventoryTemplateUploadID)
		}
		payload.Settings = &domain.StoreSettingsPayload{MyDeal: settings}
	}

	return payload
}

// Inbound shapes a stored store record for editing
func Inbound(rec domain.StoreRecord) EditableStore {
	mp := normalizeMarketplace(rec)

	priceRecords := rec.PriceSettings
	if priceRecords == nil {
		priceRecords = rec.PriceSettingsByVendor
	}
	inventoryRecords := rec.InventorySettings
	if inventoryRecords == nil {
		inventoryRecords = rec.InventorySettingsByVendor
	}

	store := EditableStore{
		ID:            rec.ID,
		Name:          rec.Name,
		Marketplace:   mp.Name,
		MarketplaceID: mp.ID,
		IsActive:      rec.IsActive,
		CreatedAt:     rec.CreatedAt,
		StoreInfo: StoreInfo{
			StoreName:       rec.Name,
			Marketplace:     domain.NumericText(mp.ID.String()),
			APIKey:          rec.APIKeyEnc,
			MarketplaceName: mp.Name,
			MarketplaceCode: mp.Code,
		},
		PriceSettingsByVendor:     make([]VendorPriceForm, 0, len(priceRecords)),
		InventorySettingsByVendor: make([]VendorInventoryForm, 0, len(inventoryRecords)),
		Settings:                  rec.Settings,
	}
	if store.Settings == nil {
		store.Settings = map[string]json.RawMessage{}
	}

	for _, s := range priceRecords {
		store.PriceSettingsByVendor = append(store.PriceSettingsByVendor, vendorPriceFromRecord(s))
	}
	for _, s := range inventoryRecords {
		store.InventorySettingsByVendor = append(store.InventorySettingsByVendor, vendorInventoryFromRecord(s))
	}

	if raw, ok := rec.Settings[mydealSettingsKey]; ok {
		store.MyDealSettings = mydealFromRaw(raw)
	}

	return store
}

// mydealFromRaw reads the settings.mydeal block. Anything other than a
// JSON object (null, false, 0, "") means the store has no MyDeal settings.
func mydealFromRaw(raw json.RawMessage) *MyDealForm {
	var settings domain.MyDealSettings
	if !isJSONObject(raw) || json.Unmarshal(raw, &settings) != nil {
		return nil
	}
	return &MyDealForm{
		PriceTemplateUploadID:     uploadID(settings.PriceTemplateUploadID),
		InventoryTemplateUploadID: uploadID(settings.InventoryTemplateUploadID),
	}
}

func isJSONObject(raw json.RawMessage) bool {
	return strings.HasPrefix(strings.TrimSpace(string(raw)), "{")
}

// uploadID maps empty ids to null
func uploadID(n domain.Numeric) domain.Numeric {
	if !n.Truthy() {
		return domain.Numeric{}
	}
	return n
}
