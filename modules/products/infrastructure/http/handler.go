// Package http provides HTTP handlers for the products module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rai/commerce-monolith-go/modules/products/application/commands"
	"github.com/rai/commerce-monolith-go/modules/products/application/queries"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// Handler handles HTTP requests for the products module.
type Handler struct {
	createProduct  *commands.CreateProductHandler
	updateProduct  *commands.UpdateProductHandler
	deleteProduct  *commands.DeleteProductHandler
	getProduct     *queries.GetProductHandler
	listProducts   *queries.ListProductsHandler
	searchProducts *queries.SearchProductsHandler
	recentSearches *queries.RecentSearchesHandler
}

// RegisterRoutes registers the products module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createProduct *commands.CreateProductHandler,
	updateProduct *commands.UpdateProductHandler,
	deleteProduct *commands.DeleteProductHandler,
	getProduct *queries.GetProductHandler,
	listProducts *queries.ListProductsHandler,
	searchProducts *queries.SearchProductsHandler,
	recentSearches *queries.RecentSearchesHandler,
) {
	h := &Handler{
		createProduct:  createProduct,
		updateProduct:  updateProduct,
		deleteProduct:  deleteProduct,
		getProduct:     getProduct,
		listProducts:   listProducts,
		searchProducts: searchProducts,
		recentSearches: recentSearches,
	}

	mux.HandleFunc("GET /products", h.handleListProducts)
	mux.HandleFunc("POST /products", h.handleCreateProduct)
	mux.HandleFunc("GET /products/searches/recent", h.handleRecentSearches)
	mux.HandleFunc("GET /products/{id}", h.handleGetProduct)
	mux.HandleFunc("PUT /products/{id}", h.handleUpdateProduct)
	mux.HandleFunc("DELETE /products/{id}", h.handleDeleteProduct)
}

// Request/Response DTOs

type productRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceAmount int64  `json:"price_amount"`
	Currency    string `json:"currency"`
	Quantity    int    `json:"quantity"`
}

type createProductResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.CreateProductCommand{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		PriceAmount: req.PriceAmount,
		Currency:    req.Currency,
		Quantity:    req.Quantity,
	}

	id, err := h.createProduct.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createProductResponse{ID: id})
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.getProduct.Handle(r.Context(), queries.GetProductQuery{ProductID: id})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.UpdateProductCommand{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		PriceAmount: req.PriceAmount,
		Currency:    req.Currency,
		Quantity:    req.Quantity,
	}

	if err := h.updateProduct.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.deleteProduct.Handle(r.Context(), commands.DeleteProductCommand{ProductID: id}); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListProducts serves both the plain paginated listing and
// catalog search. Presence of any search parameter selects search.
func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if params.Has("q") || params.Has("sort_by") || params.Has("sort_order") || params.Has("min_stock") {
		h.handleSearchProducts(w, r)
		return
	}

	offset, _ := strconv.Atoi(params.Get("offset"))
	limit, _ := strconv.Atoi(params.Get("limit"))

	result, err := h.listProducts.Handle(r.Context(), queries.ListProductsQuery{
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	minStock, _ := strconv.Atoi(params.Get("min_stock"))

	query := queries.SearchProductsQuery{
		Term:      params.Get("q"),
		SortBy:    params.Get("sort_by"),
		SortOrder: params.Get("sort_order"),
		MinStock:  minStock,
	}

	result, err := h.searchProducts.Handle(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	if result == nil {
		result = []*queries.ProductDTO{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	result, err := h.recentSearches.Handle(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	if result == nil {
		result = []*queries.SearchRecordDTO{}
	}
	writeJSON(w, http.StatusOK, result)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrSKUTaken):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrSKURequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrPriceNegative),
		errors.Is(err, domain.ErrQuantityNegative),
		errors.Is(err, queries.ErrInvalidSearch):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Kind: kind, Error: message})
}
