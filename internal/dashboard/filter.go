package dashboard

import "net/url"

// AllValue is the selector value the UI uses for "no filter"
const AllValue = "__ALL__"

// Filter selects the stores and vendors a dashboard reflects. Empty fields
// mean unfiltered. A store filter is only meaningful inside the selected
// marketplace, so every marketplace change clears it.
type Filter struct {
	MarketplaceID string `json:"marketplace_id,omitempty"`
	StoreID       string `json:"store_id,omitempty"`
}

// SelectMarketplace returns the filter for a new marketplace selection.
// The store filter is always reset.
func (f Filter) SelectMarketplace(id string) Filter {
	return Filter{MarketplaceID: normalizeSelection(id)}
}

// SelectStore returns the filter with the store selection replaced
func (f Filter) SelectStore(id string) Filter {
	f.StoreID = normalizeSelection(id)
	return f
}

// Clear returns the unfiltered view
func (f Filter) Clear() Filter {
	return Filter{}
}

// IsGlobal reports whether no filter is applied
func (f Filter) IsGlobal() bool {
	return f.MarketplaceID == "" && f.StoreID == ""
}

// Params encodes the filter as query parameters. Absent filters are
// omitted, never sent empty.
func (f Filter) Params() url.Values {
	params := url.Values{}
	if f.MarketplaceID != "" {
		params.Set("marketplace_id", f.MarketplaceID)
	}
	if f.StoreID != "" {
		params.Set("store_id", f.StoreID)
	}
	return params
}

func normalizeSelection(id string) string {
	if id == AllValue {
		return ""
	}
	return id
}
