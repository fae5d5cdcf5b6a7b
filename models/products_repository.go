package models

import (
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrVariantNotFound is returned when a variant is not found.
var ErrVariantNotFound = errors.New("variant not found")

type ProductFilters struct {
	TypeHandle  string
	EnabledOnly bool
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{}).
		Joins("LEFT JOIN product_types ON product_types.id = products.type_id").
		Preload("Type")

	// Filter
	if filters.TypeHandle != "" {
		query = query.Where("product_types.handle = ?", filters.TypeHandle)
	}
	if filters.EnabledOnly {
		query = query.Where("products.enabled = ?", true)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("variants.sort_order asc")
		}).
		Preload("Type").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

// GetVariants returns the product's persisted variants in display
// order. Products without persisted variants get a single synthesized
// placeholder so callers can always rely on at least one variant.
func (r *ProductsRepository) GetVariants(productID uint) ([]Variant, error) {
	var variants []Variant
	if err := r.db.
		Where("product_id = ?", productID).
		Order("sort_order asc").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	p := Product{ID: productID, Variants: variants}
	return p.EffectiveVariants(), nil
}

func (r *ProductsRepository) GetDefaultVariant(productID uint) (*Variant, error) {
	variants, err := r.GetVariants(productID)
	if err != nil {
		return nil, err
	}
	p := Product{ID: productID, Variants: variants}
	v := p.DefaultVariant()
	return &v, nil
}

func (r *ProductsRepository) GetTotalStock(productID uint) (int, error) {
	variants, err := r.GetVariants(productID)
	if err != nil {
		return 0, err
	}
	p := Product{ID: productID, Variants: variants}
	return p.TotalStock(), nil
}

func (r *ProductsRepository) HasUnlimitedStock(productID uint) (bool, error) {
	variants, err := r.GetVariants(productID)
	if err != nil {
		return false, err
	}
	p := Product{ID: productID, Variants: variants}
	return p.HasUnlimitedStock(), nil
}

func (r *ProductsRepository) GetVariantByID(id uint) (*Variant, error) {
	var variant Variant
	if err := r.db.First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// SaveProduct persists the product and its variants in one
// transaction. Variant sort order follows slice position.
func (r *ProductsRepository) SaveProduct(p *Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range p.Variants {
			p.Variants[i].SortOrder = i
		}
		return tx.Save(p).Error
	})
}
