package handler

import (
	"net/http"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/middleware"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
)

type ProductHandler struct {
	catalogUC *usecase.ProductCatalogUseCase
}

func NewProductHandler(catalogUC *usecase.ProductCatalogUseCase) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC}
}

// seesInactive reports whether the caller may see inactive products.
func seesInactive(r *http.Request) bool {
	user := middleware.UserFromContext(r.Context())
	return user != nil && user.IsAdmin()
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, seesInactive(r))
}

func (h *ProductHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, includeInactive bool) {
	products, err := h.catalogUC.List(r.Context(), includeInactive)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	product, err := h.catalogUC.Get(r.Context(), id, seesInactive(r))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*product))
}

type CreateProductRequest struct {
	ProductName string `json:"product_name" validate:"required,max=100"`
	CreditCost  *int64 `json:"credit_cost" validate:"required,gte=0"`
	IsActive    *bool  `json:"is_active"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	product, err := h.catalogUC.Create(r.Context(), usecase.CreateProductInput{
		ProductName: req.ProductName,
		CreditCost:  *req.CreditCost,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProductResponse(*product))
}

type UpdateProductRequest struct {
	ProductName *string `json:"product_name" validate:"omitempty,min=1,max=100"`
	CreditCost  *int64  `json:"credit_cost" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req UpdateProductRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	product, err := h.catalogUC.Update(r.Context(), id, usecase.UpdateProductInput{
		ProductName: req.ProductName,
		CreditCost:  req.CreditCost,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductResponse(*product))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err := h.catalogUC.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
