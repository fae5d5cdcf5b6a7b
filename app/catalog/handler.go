package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/merchantkit/commerce-core/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type ProductType struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

type Product struct {
	ID     uint        `json:"id"`
	Title  string      `json:"title"`
	Status string      `json:"status"`
	Type   ProductType `json:"type"`
}

type Variant struct {
	SKU            string  `json:"sku"`
	Price          float64 `json:"price"`
	Stock          int     `json:"stock"`
	UnlimitedStock bool    `json:"unlimited_stock"`
	IsDefault      bool    `json:"is_default"`
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetVariants(productID uint) ([]models.Variant, error)
	GetDefaultVariant(productID uint) (*models.Variant, error)
	GetTotalStock(productID uint) (int, error)
	HasUnlimitedStock(productID uint) (bool, error)
	SaveProduct(p *models.Product) error
}

type CatalogHandler struct {
	repo ProductProvider
	now  func() time.Time
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		now:  time.Now,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params
	offset := 0
	limit := 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	filters := models.ProductFilters{
		TypeHandle:  r.URL.Query().Get("type"),
		EnabledOnly: r.URL.Query().Get("enabled") == "true",
	}

	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		http.Error(w, "failed to get products", http.StatusInternalServerError)
		return
	}

	now := h.now()
	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = Product{
			ID:     p.ID,
			Title:  p.Title,
			Status: string(p.Status(now)),
			Type: ProductType{
				Handle: p.Type.Handle,
				Name:   p.Type.Name,
			},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Total:    int(total),
		Products: products,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title    string `json:"title"`
		TypeID   uint   `json:"type_id"`
		Enabled  bool   `json:"enabled"`
		Variants []struct {
			SKU            string  `json:"sku"`
			Price          float64 `json:"price"`
			Stock          int     `json:"stock"`
			UnlimitedStock bool    `json:"unlimited_stock"`
			IsDefault      bool    `json:"is_default"`
		} `json:"variants"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Title == "" {
		http.Error(w, "Missing title", http.StatusBadRequest)
		return
	}

	product := &models.Product{
		Title:   input.Title,
		TypeID:  input.TypeID,
		Enabled: input.Enabled,
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.Variant{
			SKU:            v.SKU,
			Price:          decimal.NewFromFloat(v.Price),
			Stock:          v.Stock,
			UnlimitedStock: v.UnlimitedStock,
			IsDefault:      v.IsDefault,
		})
	}

	if err := h.repo.SaveProduct(product); err != nil {
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]uint{"id": product.ID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleGetVariants serves the variant list and stock aggregates without
// preloading the whole product graph.
func (h *CatalogHandler) HandleGetVariants(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if _, err := h.repo.GetByID(uint(id)); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve product", http.StatusInternalServerError)
		return
	}

	variants, err := h.repo.GetVariants(uint(id))
	if err != nil {
		http.Error(w, "Failed to retrieve variants", http.StatusInternalServerError)
		return
	}
	defaultVariant, err := h.repo.GetDefaultVariant(uint(id))
	if err != nil {
		http.Error(w, "Failed to resolve default variant", http.StatusInternalServerError)
		return
	}
	totalStock, err := h.repo.GetTotalStock(uint(id))
	if err != nil {
		http.Error(w, "Failed to aggregate stock", http.StatusInternalServerError)
		return
	}
	unlimited, err := h.repo.HasUnlimitedStock(uint(id))
	if err != nil {
		http.Error(w, "Failed to aggregate stock", http.StatusInternalServerError)
		return
	}

	out := make([]Variant, len(variants))
	for i, v := range variants {
		out[i] = Variant{
			SKU:            v.SKU,
			Price:          v.Price.InexactFloat64(),
			Stock:          v.Stock,
			UnlimitedStock: v.UnlimitedStock,
			IsDefault:      v.IsDefault,
		}
	}

	response := struct {
		DefaultSKU     string    `json:"default_sku"`
		TotalStock     int       `json:"total_stock"`
		UnlimitedStock bool      `json:"unlimited_stock"`
		Variants       []Variant `json:"variants"`
	}{
		DefaultSKU:     defaultVariant.SKU,
		TotalStock:     totalStock,
		UnlimitedStock: unlimited,
		Variants:       out,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve product", http.StatusInternalServerError)
		return
	}

	// Map response
	effective := product.EffectiveVariants()
	variants := make([]Variant, len(effective))
	for i, v := range effective {
		variants[i] = Variant{
			SKU:            v.SKU,
			Price:          v.Price.InexactFloat64(),
			Stock:          v.Stock,
			UnlimitedStock: v.UnlimitedStock,
			IsDefault:      v.IsDefault,
		}
	}

	response := struct {
		ID             uint        `json:"id"`
		Title          string      `json:"title"`
		Status         string      `json:"status"`
		Type           ProductType `json:"type"`
		DefaultSKU     string      `json:"default_sku"`
		TotalStock     int         `json:"total_stock"`
		UnlimitedStock bool        `json:"unlimited_stock"`
		Variants       []Variant   `json:"variants"`
	}{
		ID:     product.ID,
		Title:  product.Title,
		Status: string(product.Status(h.now())),
		Type: ProductType{
			Handle: product.Type.Handle,
			Name:   product.Type.Name,
		},
		DefaultSKU:     product.DefaultVariant().SKU,
		TotalStock:     product.TotalStock(),
		UnlimitedStock: product.HasUnlimitedStock(),
		Variants:       variants,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
