package storeconfig

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storeconfig/internal/coerce"
	"github.com/jafarshop/storeconfig/internal/domain"
)

// DefaultDontPayDiscountPercentage applies when a tier omits the discount
const DefaultDontPayDiscountPercentage = 10

const centsPerUnit = 100

// MaxMinimumMargin is the largest major-unit minimum margin whose cents
// value fits in an int64
const MaxMinimumMargin = math.MaxInt64 / centsPerUnit

func priceRangeToPayload(r PriceRangeForm) domain.PriceRangePayload {
	return domain.PriceRangePayload{
		FromValue:                 coerce.Float(r.From.String(), 0),
		ToValue:                   domain.BoundOf(r.To),
		MarginPercentage:          coerce.Float(r.Margin.String(), 0),
		MinimumMarginCents:        toCents(r.MinimumMargin),
		DontPayDiscountPercentage: dontPayDiscount(r.DontPayDiscountPercentage),
	}
}

func priceRangeFromRecord(r domain.PriceRangeRecord) PriceRangeForm {
	return PriceRangeForm{
		From:                      domain.NumericText(r.FromValue.TextOr("0")),
		To:                        domain.NumericText(r.ToValue.String()),
		Margin:                    domain.NumericText(r.MarginPercentage.TextOr("0")),
		MinimumMargin:             domain.NumericText(fromCents(r.MinimumMarginCents)),
		DontPayDiscountPercentage: domain.NumericText(dontPayDiscountText(r.DontPayDiscountPercentage)),
	}
}

func inventoryRangeToPayload(r InventoryRangeForm) domain.InventoryRangePayload {
	return domain.InventoryRangePayload{
		FromValue:  coerce.Float(r.From.String(), 0),
		ToValue:    domain.BoundOf(r.To),
		Multiplier: coerce.Float(r.MultipliedWith.String(), 0),
	}
}

func inventoryRangeFromRecord(r domain.InventoryRangeRecord) InventoryRangeForm {
	return InventoryRangeForm{
		From:           domain.NumericText(r.FromValue.TextOr("0")),
		To:             domain.NumericText(r.ToValue.String()),
		MultipliedWith: domain.NumericText(r.Multiplier.TextOr("0")),
	}
}

// toCents parses the major-unit minimum margin as an integer. Values that
// are negative or too large to hold in cents fall back to zero.
func toCents(n domain.Numeric) int64 {
	units := coerce.Int(n.String(), 0)
	if units < 0 || units > MaxMinimumMargin {
		return 0
	}
	return units * centsPerUnit
}

func fromCents(n domain.Numeric) string {
	cents, err := decimal.NewFromString(n.String())
	if err != nil {
		cents = decimal.Zero
	}
	return cents.Div(decimal.NewFromInt(centsPerUnit)).String()
}

// dontPayDiscount defaults only when the value is absent; an explicit zero
// is kept
func dontPayDiscount(n domain.Numeric) float64 {
	if !n.Valid() {
		return DefaultDontPayDiscountPercentage
	}
	return coerce.Float(n.String(), 0)
}

func dontPayDiscountText(n domain.Numeric) string {
	if !n.Valid() {
		return decimal.NewFromInt(DefaultDontPayDiscountPercentage).String()
	}
	return n.String()
}
