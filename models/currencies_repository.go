package models

import (
	"errors"

	"gorm.io/gorm"
)

// ErrCurrencyNotFound is returned when a currency id has no record.
var ErrCurrencyNotFound = errors.New("currency not found")

type CurrenciesRepository struct {
	db *gorm.DB
}

func NewCurrenciesRepository(db *gorm.DB) *CurrenciesRepository {
	return &CurrenciesRepository{
		db: db,
	}
}

func (r *CurrenciesRepository) ListCurrencies() ([]Currency, error) {
	var currencies []Currency
	if err := r.db.Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

// SaveCurrency persists the currency. When the record is flagged
// primary, every other primary flag is cleared in the same transaction
// so the store never holds two primary currencies, even transiently.
func (r *CurrenciesRepository) SaveCurrency(c *Currency) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if c.IsPrimary {
			if err := tx.Model(&Currency{}).
				Where("is_primary = ?", true).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(c).Error
	})
}

// DeleteCurrency removes the record. Deleting an unknown id is a no-op.
func (r *CurrenciesRepository) DeleteCurrency(id uint) error {
	return r.db.Delete(&Currency{}, id).Error
}
