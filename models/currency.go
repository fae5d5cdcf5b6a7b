package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a payment currency supported by the store.
// All base prices are stored in the primary currency; Rate is the
// multiplier from the primary currency into this one, so the primary
// currency itself always carries a rate of exactly 1.
type Currency struct {
	ID        uint            `gorm:"primaryKey"`
	ISO       string          `gorm:"column:iso;uniqueIndex;size:3;not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(14,8);not null"`
	IsPrimary bool            `gorm:"not null;default:false;index"`
}

func (c *Currency) TableName() string {
	return "currencies"
}

// ValidationError reports a rejected write with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NormalizeISO uppercases a currency code for storage and comparison.
func NormalizeISO(iso string) string {
	return strings.ToUpper(strings.TrimSpace(iso))
}

// Validate checks the currency is storable: a 3-letter uppercase ISO
// code and a positive rate. The ISO code must already be normalized.
func (c *Currency) Validate() error {
	if len(c.ISO) != 3 {
		return &ValidationError{Field: "iso", Reason: "must be exactly 3 letters"}
	}
	for _, r := range c.ISO {
		if r < 'A' || r > 'Z' {
			return &ValidationError{Field: "iso", Reason: "must be uppercase letters A-Z"}
		}
	}
	if c.Rate.Sign() <= 0 {
		return &ValidationError{Field: "rate", Reason: "must be greater than zero"}
	}
	return nil
}
