package models

// ProductType groups products sharing a handle and display name.
type ProductType struct {
	ID     uint   `gorm:"primaryKey"`
	Handle string `gorm:"uniqueIndex;not null"`
	Name   string `gorm:"not null"`
}

func (t *ProductType) TableName() string {
	return "product_types"
}
