// Package http provides HTTP handlers for the carts module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rai/commerce-monolith-go/modules/carts/application/commands"
	"github.com/rai/commerce-monolith-go/modules/carts/application/queries"
	"github.com/rai/commerce-monolith-go/modules/carts/domain"
)

// Handler handles HTTP requests for the carts module.
type Handler struct {
	addProduct    *commands.AddProductHandler
	removeProduct *commands.RemoveProductHandler
	clearCart     *commands.ClearCartHandler
	getCart       *queries.GetCartHandler
}

// RegisterRoutes registers the carts module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	addProduct *commands.AddProductHandler,
	removeProduct *commands.RemoveProductHandler,
	clearCart *commands.ClearCartHandler,
	getCart *queries.GetCartHandler,
) {
	h := &Handler{
		addProduct:    addProduct,
		removeProduct: removeProduct,
		clearCart:     clearCart,
		getCart:       getCart,
	}

	mux.HandleFunc("GET /clients/{id}/cart", h.handleGetCart)
	mux.HandleFunc("POST /clients/{id}/cart/items", h.handleAddProduct)
	mux.HandleFunc("DELETE /clients/{id}/cart/items/{productId}", h.handleRemoveProduct)
	mux.HandleFunc("DELETE /clients/{id}/cart", h.handleClearCart)
}

// Request/Response DTOs

type addProductRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")

	cart, err := h.getCart.Handle(r.Context(), queries.GetCartQuery{ClientID: clientID})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *Handler) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")

	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.AddProductCommand{
		ClientID:  clientID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}

	if err := h.addProduct.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")
	productID := r.PathValue("productId")
	quantity, _ := strconv.Atoi(r.URL.Query().Get("quantity"))

	cmd := commands.RemoveProductCommand{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := h.removeProduct.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")

	if err := h.clearCart.Handle(r.Context(), commands.ClearCartCommand{ClientID: clientID}); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCartItemNotFound),
		errors.Is(err, domain.ErrClientUnknown),
		errors.Is(err, domain.ErrProductUnknown):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, domain.ErrClientRequired),
		errors.Is(err, domain.ErrProductRequired):
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
