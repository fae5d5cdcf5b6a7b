package producttypes

import (
	"encoding/json"
	"net/http"

	"github.com/merchantkit/commerce-core/models"
)

type ProductTypeResponse struct {
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

type ProductTypeProvider interface {
	GetAllProductTypes() ([]models.ProductType, error)
	CreateProductType(t *models.ProductType) error
}

type ProductTypeHandler struct {
	repo ProductTypeProvider
}

func NewProductTypeHandler(r ProductTypeProvider) *ProductTypeHandler {
	return &ProductTypeHandler{repo: r}
}

func (h *ProductTypeHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.GetAllProductTypes()
	if err != nil {
		http.Error(w, "failed to fetch product types", http.StatusInternalServerError)
		return
	}

	response := make([]ProductTypeResponse, len(types))
	for i, t := range types {
		response[i] = ProductTypeResponse{
			Handle: t.Handle,
			Name:   t.Name,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ProductTypeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Handle string `json:"handle"`
		Name   string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if input.Handle == "" || input.Name == "" {
		http.Error(w, "Missing handle or name", http.StatusBadRequest)
		return
	}

	productType := &models.ProductType{
		Handle: input.Handle,
		Name:   input.Name,
	}

	if err := h.repo.CreateProductType(productType); err != nil {
		http.Error(w, "Failed to create product type", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"message": "Product type created successfully",
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
