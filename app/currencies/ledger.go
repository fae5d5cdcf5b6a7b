package currencies

import (
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/merchantkit/commerce-core/models"
)

// ErrUnknownCurrency is returned when a conversion target has no record.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrNoPrimaryCurrency is returned when no currency is flagged primary.
// This should never happen in a healthy store and indicates corrupted
// data rather than bad caller input.
var ErrNoPrimaryCurrency = errors.New("no primary currency configured")

// CurrencyStore is the persistence needed by the ledger. SaveCurrency
// must clear competing primary flags atomically with the write.
type CurrencyStore interface {
	ListCurrencies() ([]models.Currency, error)
	SaveCurrency(c *models.Currency) error
	DeleteCurrency(id uint) error
}

// Ledger maintains the supported currencies and converts amounts from
// the primary currency. The full list is cached after the first read;
// every write invalidates the cache before returning, so reads are
// never served stale rates after a completed write.
type Ledger struct {
	store CurrencyStore
	log   zerolog.Logger

	mu    sync.RWMutex
	cache []models.Currency
	gen   uint64
}

func NewLedger(store CurrencyStore, log zerolog.Logger) *Ledger {
	return &Ledger{
		store: store,
		log:   log,
	}
}

// All returns every currency, primary first, then alphabetical by ISO.
// Callers receive their own copy of the list.
func (l *Ledger) All() ([]models.Currency, error) {
	l.mu.RLock()
	cached := l.cache
	gen := l.gen
	l.mu.RUnlock()

	if cached == nil {
		currencies, err := l.store.ListCurrencies()
		if err != nil {
			return nil, err
		}
		sort.SliceStable(currencies, func(i, j int) bool {
			if currencies[i].IsPrimary != currencies[j].IsPrimary {
				return currencies[i].IsPrimary
			}
			return currencies[i].ISO < currencies[j].ISO
		})

		l.mu.Lock()
		// A write may have landed while this fetch was in flight;
		// installing the fetched list then would hand later readers
		// pre-write rates. Only cache it if no invalidation happened.
		if l.gen == gen {
			l.cache = currencies
		}
		l.mu.Unlock()
		cached = currencies
	}

	out := make([]models.Currency, len(cached))
	copy(out, cached)
	return out, nil
}

// ByISO looks a currency up by its 3-letter code, case-insensitively.
func (l *Ledger) ByISO(iso string) (*models.Currency, error) {
	iso = models.NormalizeISO(iso)
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ISO == iso {
			c := all[i]
			return &c, nil
		}
	}
	return nil, models.ErrCurrencyNotFound
}

// ByID looks a currency up by its identifier.
func (l *Ledger) ByID(id uint) (*models.Currency, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			c := all[i]
			return &c, nil
		}
	}
	return nil, models.ErrCurrencyNotFound
}

// Primary returns the currency all base prices are stored in.
func (l *Ledger) Primary() (*models.Currency, error) {
	all, err := l.All()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].IsPrimary {
			c := all[i]
			return &c, nil
		}
	}
	l.log.Error().Msg("currency ledger has no primary currency; data is corrupted")
	return nil, ErrNoPrimaryCurrency
}

// Convert multiplies an amount in the primary currency by the target
// currency's rate.
func (l *Ledger) Convert(amount decimal.Decimal, targetISO string) (decimal.Decimal, error) {
	target, err := l.ByISO(targetISO)
	if err != nil {
		if errors.Is(err, models.ErrCurrencyNotFound) {
			return decimal.Decimal{}, ErrUnknownCurrency
		}
		return decimal.Decimal{}, err
	}
	return amount.Mul(target.Rate), nil
}

// Save validates and persists a currency. The ISO code is uppercased
// before validation. A primary currency always gets rate 1, whatever
// rate was submitted, and any previously primary currency loses its
// flag in the same write.
func (l *Ledger) Save(c *models.Currency) error {
	c.ISO = models.NormalizeISO(c.ISO)
	if c.IsPrimary {
		c.Rate = decimal.NewFromInt(1)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := l.store.SaveCurrency(c); err != nil {
		return err
	}
	l.invalidate()
	return nil
}

// DeleteByID removes a currency. Unknown ids are a no-op.
func (l *Ledger) DeleteByID(id uint) error {
	if err := l.store.DeleteCurrency(id); err != nil {
		return err
	}
	l.invalidate()
	return nil
}

func (l *Ledger) invalidate() {
	l.mu.Lock()
	l.cache = nil
	l.gen++
	l.mu.Unlock()
}
