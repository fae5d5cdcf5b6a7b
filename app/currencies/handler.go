package currencies

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/merchantkit/commerce-core/models"
)

type CurrencyResponse struct {
	ID        uint    `json:"id"`
	ISO       string  `json:"iso"`
	Rate      float64 `json:"rate"`
	IsPrimary bool    `json:"is_primary"`
}

type LedgerProvider interface {
	All() ([]models.Currency, error)
	ByID(id uint) (*models.Currency, error)
	Convert(amount decimal.Decimal, targetISO string) (decimal.Decimal, error)
	Save(c *models.Currency) error
	DeleteByID(id uint) error
}

type CurrencyHandler struct {
	ledger LedgerProvider
}

func NewCurrencyHandler(l LedgerProvider) *CurrencyHandler {
	return &CurrencyHandler{ledger: l}
}

func (h *CurrencyHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.ledger.All()
	if err != nil {
		http.Error(w, "failed to fetch currencies", http.StatusInternalServerError)
		return
	}

	response := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		response[i] = CurrencyResponse{
			ID:        c.ID,
			ISO:       c.ISO,
			Rate:      c.Rate.InexactFloat64(),
			IsPrimary: c.IsPrimary,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CurrencyHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid currency id", http.StatusBadRequest)
		return
	}

	currency, err := h.ledger.ByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrCurrencyNotFound) {
			http.Error(w, "Currency not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch currency", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CurrencyResponse{
		ID:        currency.ID,
		ISO:       currency.ISO,
		Rate:      currency.Rate.InexactFloat64(),
		IsPrimary: currency.IsPrimary,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CurrencyHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID        uint    `json:"id"`
		ISO       string  `json:"iso"`
		Rate      float64 `json:"rate"`
		IsPrimary bool    `json:"is_primary"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	currency := &models.Currency{
		ID:        input.ID,
		ISO:       input.ISO,
		Rate:      decimal.NewFromFloat(input.Rate),
		IsPrimary: input.IsPrimary,
	}

	if err := h.ledger.Save(currency); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to save currency", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CurrencyResponse{
		ID:        currency.ID,
		ISO:       currency.ISO,
		Rate:      currency.Rate.InexactFloat64(),
		IsPrimary: currency.IsPrimary,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CurrencyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid currency id", http.StatusBadRequest)
		return
	}

	if err := h.ledger.DeleteByID(uint(id)); err != nil {
		http.Error(w, "Failed to delete currency", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CurrencyHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil || amount.Sign() < 0 {
		http.Error(w, "Invalid amount", http.StatusBadRequest)
		return
	}

	target := r.URL.Query().Get("to")
	if target == "" {
		http.Error(w, "Missing target currency", http.StatusBadRequest)
		return
	}

	converted, err := h.ledger.Convert(amount, target)
	if err != nil {
		if errors.Is(err, ErrUnknownCurrency) {
			http.Error(w, "Unknown currency", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to convert", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}{
		Amount:   converted.InexactFloat64(),
		Currency: models.NormalizeISO(target),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
