package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeISO(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeISO("eur"))
	assert.Equal(t, "USD", NormalizeISO("  usd "))
	assert.Equal(t, "GBP", NormalizeISO("GBP"))
}

func TestCurrencyValidate(t *testing.T) {
	testCases := []struct {
		name          string
		currency      Currency
		expectedField string
	}{
		{
			name:     "Valid currency",
			currency: Currency{ISO: "EUR", Rate: decimal.NewFromFloat(0.9)},
		},
		{
			name:          "ISO too short",
			currency:      Currency{ISO: "EU", Rate: decimal.NewFromFloat(0.9)},
			expectedField: "iso",
		},
		{
			name:          "ISO too long",
			currency:      Currency{ISO: "EURO", Rate: decimal.NewFromFloat(0.9)},
			expectedField: "iso",
		},
		{
			name:          "ISO not uppercase",
			currency:      Currency{ISO: "eur", Rate: decimal.NewFromFloat(0.9)},
			expectedField: "iso",
		},
		{
			name:          "ISO with digits",
			currency:      Currency{ISO: "EU1", Rate: decimal.NewFromFloat(0.9)},
			expectedField: "iso",
		},
		{
			name:          "Zero rate",
			currency:      Currency{ISO: "EUR", Rate: decimal.Zero},
			expectedField: "rate",
		},
		{
			name:          "Negative rate",
			currency:      Currency{ISO: "EUR", Rate: decimal.NewFromFloat(-0.5)},
			expectedField: "rate",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.currency.Validate()
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.expectedField, vErr.Field)
		})
	}
}
