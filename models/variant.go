package models

import (
	"github.com/shopspring/decimal"
)

// Variant is a purchasable SKU belonging to a product. Price is always
// stored in the primary currency.
type Variant struct {
	ID             uint            `gorm:"primaryKey"`
	ProductID      uint            `gorm:"index;not null"`
	SKU            string          `gorm:"index"`
	Price          decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Stock          int             `gorm:"not null;default:0"`
	UnlimitedStock bool            `gorm:"not null;default:false"`
	IsDefault      bool            `gorm:"not null;default:false"`
	Weight         decimal.Decimal `gorm:"type:decimal(12,4);default:0"`
	Length         decimal.Decimal `gorm:"type:decimal(12,4);default:0"`
	Width          decimal.Decimal `gorm:"type:decimal(12,4);default:0"`
	Height         decimal.Decimal `gorm:"type:decimal(12,4);default:0"`
	SortOrder      int             `gorm:"not null;default:0;index"`
}

func (v *Variant) TableName() string {
	return "variants"
}

// placeholderVariant stands in for products with no persisted variants.
// It is synthesized on read and never written to the store.
func placeholderVariant(productID uint) Variant {
	return Variant{
		ProductID: productID,
		IsDefault: true,
	}
}
