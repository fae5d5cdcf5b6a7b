package models

import (
	"gorm.io/gorm"
)

type ProductTypesRepository struct {
	db *gorm.DB
}

func NewProductTypesRepository(db *gorm.DB) *ProductTypesRepository {
	return &ProductTypesRepository{
		db: db,
	}
}

func (r *ProductTypesRepository) GetAllProductTypes() ([]ProductType, error) {
	var types []ProductType
	if err := r.db.Order("handle asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *ProductTypesRepository) CreateProductType(t *ProductType) error {
	return r.db.Create(t).Error
}
