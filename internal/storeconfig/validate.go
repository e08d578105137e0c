package storeconfig

import (
	"fmt"
	"strings"

	"github.com/jafarshop/storeconfig/internal/coerce"
	"github.com/jafarshop/storeconfig/internal/domain"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

var strict = coerce.Parser{Mode: coerce.Strict}

// tier is the numeric interval of one range
type tier struct {
	from float64
	to   float64
	max  bool
}

// Validate checks a form before it is saved. The transform itself accepts
// anything; Validate reports every value the transform would have replaced
// with a default, duplicate vendors, and tiers that are unsorted, overlap,
// or misuse the MAX bound. Empty fields are allowed and take their default.
func Validate(f Form) error {
	v := &errors.ErrValidation{}

	if strings.TrimSpace(f.StoreInfo.StoreName) == "" {
		v.Add("store name is required")
	}
	if id, err := strict.Int(f.StoreInfo.Marketplace.String(), 0); err != nil || id <= 0 {
		v.Add("marketplace must be a positive integer id, got %q", f.StoreInfo.Marketplace.String())
	}

	seen := make(map[int64]bool, len(f.PriceSettingsByVendor))
	for _, vendor := range f.PriceSettingsByVendor {
		checkVendorPrice(v, seen, vendor)
	}

	seen = make(map[int64]bool, len(f.InventorySettingsByVendor))
	for _, vendor := range f.InventorySettingsByVendor {
		id := checkVendorID(v, "inventory settings", vendor.VendorID)
		label := fmt.Sprintf("inventory settings for vendor %d", id)
		if seen[id] {
			v.Add("%s: duplicate vendor", label)
		}
		seen[id] = true

		tiers := make([]tier, 0, len(vendor.Ranges))
		for i, r := range vendor.Ranges {
			rl := fmt.Sprintf("%s, range %d", label, i+1)
			checkFloat(v, rl, "multiplier", r.MultipliedWith)
			if t, ok := parseTier(v, rl, r.From, r.To); ok {
				tiers = append(tiers, t)
			}
		}
		checkTiers(v, label, tiers)
	}

	return v.OrNil()
}

// ValidateVendorPrice checks a single vendor's pricing rules
func ValidateVendorPrice(vendor VendorPriceForm) error {
	v := &errors.ErrValidation{}
	checkVendorPrice(v, map[int64]bool{}, vendor)
	return v.OrNil()
}

func checkVendorPrice(v *errors.ErrValidation, seen map[int64]bool, vendor VendorPriceForm) {
	id := checkVendorID(v, "price settings", vendor.VendorID)
	label := fmt.Sprintf("price settings for vendor %d", id)
	if seen[id] {
		v.Add("%s: duplicate vendor", label)
	}
	seen[id] = true

	checkFloat(v, label, "purchase tax", vendor.PurchaseTax)
	checkFloat(v, label, "marketplace fees", vendor.MarketplaceFees)

	tiers := make([]tier, 0, len(vendor.PriceRanges))
	for i, r := range vendor.PriceRanges {
		rl := fmt.Sprintf("%s, range %d", label, i+1)
		checkFloat(v, rl, "margin", r.Margin)
		checkFloat(v, rl, "don't pay discount", r.DontPayDiscountPercentage)
		switch units, err := strict.Int(r.MinimumMargin.String(), 0); {
		case err != nil:
			v.Add("%s: minimum margin must be a whole number, got %q", rl, r.MinimumMargin.String())
		case units < 0:
			v.Add("%s: minimum margin must not be negative", rl)
		case units > MaxMinimumMargin:
			v.Add("%s: minimum margin must not exceed %d", rl, int64(MaxMinimumMargin))
		}
		if t, ok := parseTier(v, rl, r.From, r.To); ok {
			tiers = append(tiers, t)
		}
	}
	checkTiers(v, label, tiers)
}

// checkVendorID returns the vendor id as the outbound transform reads it
func checkVendorID(v *errors.ErrValidation, label string, n domain.Numeric) int64 {
	id, err := strict.Int(n.String(), 0)
	if err != nil || id <= 0 {
		v.Add("%s: vendor must be a positive integer id, got %q", label, n.String())
	}
	return vendorID(n)
}

func checkFloat(v *errors.ErrValidation, label, field string, n domain.Numeric) {
	if _, err := strict.Float(n.String(), 0); err != nil {
		v.Add("%s: %s must be a number, got %q", label, field, n.String())
	}
}

func parseTier(v *errors.ErrValidation, label string, from, to domain.Numeric) (tier, bool) {
	f, err := strict.Float(from.String(), 0)
	if err != nil {
		v.Add("%s: from must be a number, got %q", label, from.String())
		return tier{}, false
	}

	bound := domain.BoundOf(to)
	if bound.IsMax() {
		return tier{from: f, max: true}, true
	}
	t, ok := bound.Float()
	if !ok {
		v.Add("%s: to must be a number or %s, got %q", label, domain.MaxSentinel, to.String())
		return tier{}, false
	}
	if t <= f {
		v.Add("%s: to must be greater than from", label)
	}
	return tier{from: f, to: t}, true
}

// checkTiers enforces ascending, non-overlapping tiers with at most one
// MAX bound, placed last
func checkTiers(v *errors.ErrValidation, label string, tiers []tier) {
	maxCount := 0
	for i, t := range tiers {
		if t.max {
			maxCount++
			if i != len(tiers)-1 {
				v.Add("%s: the %s bound must be on the last range", label, domain.MaxSentinel)
			}
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		switch {
		case t.from < prev.from:
			v.Add("%s: ranges must be sorted by from (range %d starts below range %d)", label, i+1, i)
		case !prev.max && t.from < prev.to:
			v.Add("%s: range %d overlaps range %d", label, i+1, i)
		}
	}
	if maxCount > 1 {
		v.Add("%s: at most one range may use %s", label, domain.MaxSentinel)
	}
}
