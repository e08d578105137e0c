package storeconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storeconfig/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantIssues []string
	}{
		{
			name: "valid configuration",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": "3"},
				"priceSettingsByVendor": [{"vendorId": 1, "purchaseTax": "", "priceRanges": [
					{"from": "0", "to": "50", "margin": "20", "minimumMargin": "2"},
					{"from": "50", "to": "MAX", "margin": "15", "minimumMargin": ""}
				]}],
				"inventorySettingsByVendor": [{"vendorId": 1, "priceRanges": [
					{"from": "0", "to": "MAX", "multipliedWith": "1"}
				]}]
			}`,
		},
		{
			name:       "missing identity",
			body:       `{"storeInfo": {"storeName": " ", "marketplace": "abc"}}`,
			wantIssues: []string{"store name is required", "marketplace must be a positive integer id"},
		},
		{
			name: "duplicate vendors",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": 3},
				"priceSettingsByVendor": [{"vendorId": 4}, {"vendorId": 4}],
				"inventorySettingsByVendor": [{"vendorId": 4}, {"vendorId": 4}]
			}`,
			wantIssues: []string{
				"price settings for vendor 4: duplicate vendor",
				"inventory settings for vendor 4: duplicate vendor",
			},
		},
		{
			name: "unsorted and overlapping tiers",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": 3},
				"priceSettingsByVendor": [{"vendorId": 1, "priceRanges": [
					{"from": "10", "to": "50"},
					{"from": "40", "to": "100"},
					{"from": "5", "to": "MAX"}
				]}]
			}`,
			wantIssues: []string{
				"range 2 overlaps range 1",
				"ranges must be sorted by from",
			},
		},
		{
			name: "misplaced MAX",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": 3},
				"inventorySettingsByVendor": [{"vendorId": 1, "priceRanges": [
					{"from": "0", "to": "MAX"},
					{"from": "10", "to": "MAX"}
				]}]
			}`,
			wantIssues: []string{
				"the MAX bound must be on the last range",
				"at most one range may use MAX",
			},
		},
		{
			name: "values the transform would replace",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": 3},
				"priceSettingsByVendor": [{"vendorId": 1, "purchaseTax": "12abc", "priceRanges": [
					{"from": "x", "to": "10"},
					{"from": "0", "to": "ten", "minimumMargin": "2.5", "margin": "abc"},
					{"from": "20", "to": "15", "minimumMargin": "-1"}
				]}]
			}`,
			wantIssues: []string{
				"purchase tax must be a number",
				"range 1: from must be a number",
				"range 2: to must be a number or MAX",
				"range 2: minimum margin must be a whole number",
				"range 2: margin must be a number",
				"range 3: minimum margin must not be negative",
				"range 3: to must be greater than from",
			},
		},
		{
			name: "minimum margin too large for cents",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": 3},
				"priceSettingsByVendor": [{"vendorId": 1, "priceRanges": [
					{"from": "0", "to": "MAX", "minimumMargin": "92233720368547759"}
				]}]
			}`,
			wantIssues: []string{"range 1: minimum margin must not exceed 92233720368547758"},
		},
		{
			name: "string vendor ids",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": "3"},
				"priceSettingsByVendor": [{"vendorId": "7", "priceRanges": [{"from": "0", "to": "MAX"}]}],
				"inventorySettingsByVendor": [{"vendorId": "7", "priceRanges": [{"from": "0", "to": "MAX"}]}]
			}`,
		},
		{
			name: "vendor ids compared after parsing",
			body: `{
				"storeInfo": {"storeName": "Acme", "marketplace": 3},
				"priceSettingsByVendor": [{"vendorId": "7"}, {"vendorId": 7}],
				"inventorySettingsByVendor": [{"vendorId": "abc"}]
			}`,
			wantIssues: []string{
				"price settings for vendor 7: duplicate vendor",
				`inventory settings: vendor must be a positive integer id, got "abc"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(decodeForm(t, tt.body))

			if len(tt.wantIssues) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *errors.ErrValidation
			require.ErrorAs(t, err, &verr)
			for _, want := range tt.wantIssues {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
