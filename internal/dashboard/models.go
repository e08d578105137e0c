package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storeconfig/internal/domain"
)

// Summary holds the scalar KPIs of a dashboard
type Summary struct {
	TotalProducts        int `json:"totalProducts"`
	ActiveStores         int `json:"activeStores"`
	VendorsCovered       int `json:"vendorsCovered"`
	ItemsNeedingRescrape int `json:"itemsNeedingRescrape"`
	RecentErrors24h      int `json:"recentErrors24h"`
	UploadsToday         int `json:"uploadsToday"`
}

// Normalize clamps every count to be non-negative
func (s *Summary) Normalize() {
	for _, v := range []*int{
		&s.TotalProducts,
		&s.ActiveStores,
		&s.VendorsCovered,
		&s.ItemsNeedingRescrape,
		&s.RecentErrors24h,
		&s.UploadsToday,
	} {
		if *v < 0 {
			*v = 0
		}
	}
}

// StoreRow is the per-store dashboard card
type StoreRow struct {
	StoreID            int64              `json:"storeId"`
	StoreName          string             `json:"storeName"`
	Marketplace        domain.Marketplace `json:"marketplace"`
	Products           int                `json:"products"`
	Vendors            int                `json:"vendors"`
	LastScrapeAt       *Timestamp         `json:"lastScrapeAt"`
	ScrapingEnabled    bool               `json:"scrapingEnabled"`
	PriceUpdateEnabled bool               `json:"priceUpdateEnabled"`

	// MyDeal stores only
	MyDealTemplatesOK     *bool      `json:"myDealTemplatesOk,omitempty"`
	LastExportPriceAt     *Timestamp `json:"lastExportPriceAt,omitempty"`
	LastExportInventoryAt *Timestamp `json:"lastExportInventoryAt,omitempty"`
}

// IsMyDeal reports whether the store sells on MyDeal
func (r StoreRow) IsMyDeal() bool {
	return domain.IsMyDeal("", r.Marketplace.Code)
}

// Normalize clamps counts and drops the MyDeal-only fields of other stores
func (r *StoreRow) Normalize() {
	if r.Products < 0 {
		r.Products = 0
	}
	if r.Vendors < 0 {
		r.Vendors = 0
	}
	if !r.IsMyDeal() {
		r.MyDealTemplatesOK = nil
		r.LastExportPriceAt = nil
		r.LastExportInventoryAt = nil
		return
	}
	if r.MyDealTemplatesOK == nil {
		ok := false
		r.MyDealTemplatesOK = &ok
	}
}

// VendorRow is the per-vendor dashboard line
type VendorRow struct {
	VendorID        int64           `json:"vendorId"`
	VendorName      string          `json:"vendorName"`
	Products        int             `json:"products"`
	OutOfStock      int             `json:"outOfStock"`
	AvgFinalPrice   decimal.Decimal `json:"avgFinalPrice"`
	PriceUpdated24h int             `json:"priceUpdated24h"`
	RecentErrors24h int             `json:"recentErrors24h"`
}

// AvgPriceDisplay renders the average final price with two decimals
func (r VendorRow) AvgPriceDisplay() string {
	return r.AvgFinalPrice.StringFixed(2)
}

// Normalize clamps every count to be non-negative
func (r *VendorRow) Normalize() {
	for _, v := range []*int{&r.Products, &r.OutOfStock, &r.PriceUpdated24h, &r.RecentErrors24h} {
		if *v < 0 {
			*v = 0
		}
	}
}

// Snapshot is one consistent dashboard: all parts were fetched for Filter
type Snapshot struct {
	Filter   Filter      `json:"filter"`
	Summary  Summary     `json:"summary"`
	Stores   []StoreRow  `json:"stores"`
	Vendors  []VendorRow `json:"vendors"`
	LoadedAt time.Time   `json:"loadedAt"`
}

// Timestamp accepts RFC 3339 times as well as naive ISO times, read as UTC
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}
