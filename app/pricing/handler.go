package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/merchantkit/commerce-core/app/currencies"
	"github.com/merchantkit/commerce-core/models"
)

type QuoteResponse struct {
	VariantID uint    `json:"variant_id"`
	SKU       string  `json:"sku"`
	Currency  string  `json:"currency"`
	Price     float64 `json:"price"`
	InStock   bool    `json:"in_stock"`
}

type SnapshotResponse struct {
	ID        string         `json:"id"`
	ProductID uint           `json:"product_id"`
	TakenAt   string         `json:"taken_at"`
	Fields    map[string]any `json:"fields"`
}

type PricingProvider interface {
	VariantQuote(variantID uint, targetISO string) (*Quote, error)
	ProductSnapshot(productID uint) (*Snapshot, error)
}

type PricingHandler struct {
	facade PricingProvider
}

func NewPricingHandler(f PricingProvider) *PricingHandler {
	return &PricingHandler{facade: f}
}

func (h *PricingHandler) HandleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid variant id", http.StatusBadRequest)
		return
	}

	currency := r.URL.Query().Get("currency")
	if currency == "" {
		http.Error(w, "Missing currency", http.StatusBadRequest)
		return
	}

	quote, err := h.facade.VariantQuote(uint(id), currency)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrVariantNotFound):
			http.Error(w, "Variant not found", http.StatusNotFound)
		case errors.Is(err, currencies.ErrUnknownCurrency):
			http.Error(w, "Unknown currency", http.StatusNotFound)
		default:
			http.Error(w, "Failed to price variant", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(QuoteResponse{
		VariantID: quote.VariantID,
		SKU:       quote.SKU,
		Currency:  quote.Currency,
		Price:     quote.Price.InexactFloat64(),
		InStock:   quote.InStock,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *PricingHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	snapshot, err := h.facade.ProductSnapshot(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to snapshot product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(SnapshotResponse{
		ID:        snapshot.ID.String(),
		ProductID: snapshot.ProductID,
		TakenAt:   snapshot.TakenAt.UTC().Format(time.RFC3339),
		Fields:    snapshot.Fields,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
