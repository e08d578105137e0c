package storeconfig

import "github.com/jafarshop/storeconfig/internal/domain"

// marketplaceInfo is the canonical marketplace identity of a store record
type marketplaceInfo struct {
	ID   domain.Numeric
	Name string
	Code string
}

// normalizeMarketplace folds the nested relation and the flat
// marketplace_* fields into one value. The relation wins per field when it
// carries a value.
func normalizeMarketplace(rec domain.StoreRecord) marketplaceInfo {
	info := marketplaceInfo{
		ID:   rec.MarketplaceID,
		Name: rec.MarketplaceName,
		Code: rec.MarketplaceCode,
	}

	if rel := rec.Marketplace; rel != nil {
		if rel.ID.Truthy() {
			info.ID = rel.ID
		}
		if rel.Name != "" {
			info.Name = rel.Name
		}
		if rel.Code != "" {
			info.Code = rel.Code
		}
	}

	return info
}
