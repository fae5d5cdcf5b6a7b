package models

import (
	"time"
)

// ProductStatus is derived from the enabled flag and the post/expiry
// window. It is recomputed on every read and never persisted.
type ProductStatus string

const (
	StatusLive     ProductStatus = "live"
	StatusPending  ProductStatus = "pending"
	StatusExpired  ProductStatus = "expired"
	StatusDisabled ProductStatus = "disabled"
)

// Product is a catalog entry owning an ordered list of variants.
type Product struct {
	ID                 uint        `gorm:"primaryKey"`
	Title              string      `gorm:"not null"`
	TypeID             uint        `gorm:"index;not null"`
	Type               ProductType `gorm:"foreignKey:TypeID"`
	TaxCategoryID      uint
	ShippingCategoryID uint
	PostDate           *time.Time
	ExpiryDate         *time.Time
	Promotable         bool      `gorm:"not null;default:false"`
	FreeShipping       bool      `gorm:"not null;default:false"`
	Enabled            bool      `gorm:"not null;default:true;index"`
	Variants           []Variant `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "products"
}

// EffectiveVariants returns the product's variants in display order. A
// product always exposes at least one variant: when none are loaded, a
// single placeholder is synthesized in memory.
func (p *Product) EffectiveVariants() []Variant {
	if len(p.Variants) == 0 {
		return []Variant{placeholderVariant(p.ID)}
	}
	return p.Variants
}

// DefaultVariant returns the first variant flagged default, falling
// back to the first variant overall when none carry the flag.
func (p *Product) DefaultVariant() Variant {
	variants := p.EffectiveVariants()
	for _, v := range variants {
		if v.IsDefault {
			return v
		}
	}
	return variants[0]
}

// TotalStock sums stock across variants. Variants with unlimited stock
// are excluded from the sum, not counted as infinite.
func (p *Product) TotalStock() int {
	stock := 0
	for _, v := range p.EffectiveVariants() {
		if !v.UnlimitedStock {
			stock += v.Stock
		}
	}
	return stock
}

// HasUnlimitedStock reports whether any variant has unlimited stock.
func (p *Product) HasUnlimitedStock() bool {
	for _, v := range p.EffectiveVariants() {
		if v.UnlimitedStock {
			return true
		}
	}
	return false
}

// Status computes the product's visibility state at the given instant.
// A post date equal to now counts as already posted.
func (p *Product) Status(now time.Time) ProductStatus {
	if !p.Enabled {
		return StatusDisabled
	}
	posted := p.PostDate == nil || !p.PostDate.After(now)
	if posted {
		if p.ExpiryDate == nil || p.ExpiryDate.After(now) {
			return StatusLive
		}
		return StatusExpired
	}
	return StatusPending
}

// Snapshot flattens the product's attributes into a fresh map so the
// caller can freeze them (e.g. on an order line item) without holding a
// reference back to the live record.
func (p *Product) Snapshot() map[string]any {
	snapshot := map[string]any{
		"id":                 p.ID,
		"title":              p.Title,
		"typeId":             p.TypeID,
		"taxCategoryId":      p.TaxCategoryID,
		"shippingCategoryId": p.ShippingCategoryID,
		"promotable":         p.Promotable,
		"freeShipping":       p.FreeShipping,
		"enabled":            p.Enabled,
	}
	if p.PostDate != nil {
		snapshot["postDate"] = *p.PostDate
	}
	if p.ExpiryDate != nil {
		snapshot["expiryDate"] = *p.ExpiryDate
	}
	return snapshot
}
