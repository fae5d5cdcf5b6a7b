package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/merchantkit/commerce-core/models"
)

// Converter converts an amount in the primary currency into a target
// currency. The currency ledger satisfies this.
type Converter interface {
	Convert(amount decimal.Decimal, targetISO string) (decimal.Decimal, error)
}

// CatalogStore is the slice of the product repository the facade needs.
type CatalogStore interface {
	GetByID(id uint) (*models.Product, error)
	GetVariantByID(id uint) (*models.Variant, error)
}

// Quote is a variant's price in the requested currency together with
// its availability.
type Quote struct {
	VariantID uint
	SKU       string
	Currency  string
	Price     decimal.Decimal
	InStock   bool
}

// Snapshot is an immutable point-in-time copy of a product's
// attributes, used to freeze catalog data on historical records such
// as order line items. It shares no state with the live product.
type Snapshot struct {
	ID        uuid.UUID
	ProductID uint
	TakenAt   time.Time
	Fields    map[string]any
}

// Facade composes the catalog and the currency ledger to answer
// storefront pricing queries.
type Facade struct {
	catalog CatalogStore
	ledger  Converter
	log     zerolog.Logger
	now     func() time.Time
}

func NewFacade(catalog CatalogStore, ledger Converter, log zerolog.Logger) *Facade {
	return &Facade{
		catalog: catalog,
		ledger:  ledger,
		log:     log,
		now:     time.Now,
	}
}

// VariantPrice returns the variant's price converted into the target
// currency.
func (f *Facade) VariantPrice(variantID uint, targetISO string) (decimal.Decimal, error) {
	variant, err := f.catalog.GetVariantByID(variantID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return f.ledger.Convert(variant.Price, targetISO)
}

// VariantQuote returns the converted price alongside availability: a
// variant is in stock when it has unlimited stock or a positive count.
func (f *Facade) VariantQuote(variantID uint, targetISO string) (*Quote, error) {
	variant, err := f.catalog.GetVariantByID(variantID)
	if err != nil {
		return nil, err
	}
	price, err := f.ledger.Convert(variant.Price, targetISO)
	if err != nil {
		return nil, err
	}
	return &Quote{
		VariantID: variant.ID,
		SKU:       variant.SKU,
		Currency:  models.NormalizeISO(targetISO),
		Price:     price,
		InStock:   variant.UnlimitedStock || variant.Stock > 0,
	}, nil
}

// ProductSnapshot freezes the product's current attributes. Later
// catalog edits do not alter a snapshot already taken.
func (f *Facade) ProductSnapshot(productID uint) (*Snapshot, error) {
	product, err := f.catalog.GetByID(productID)
	if err != nil {
		return nil, err
	}
	fields := product.Snapshot()
	fields["title"] = product.Title
	fields["defaultSku"] = product.DefaultVariant().SKU

	snapshot := &Snapshot{
		ID:        uuid.New(),
		ProductID: product.ID,
		TakenAt:   f.now(),
		Fields:    fields,
	}
	f.log.Debug().
		Uint("product_id", product.ID).
		Str("snapshot_id", snapshot.ID.String()).
		Msg("captured product snapshot")
	return snapshot, nil
}
