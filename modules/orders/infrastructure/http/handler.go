// Package http provides HTTP handlers for the orders module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rai/commerce-monolith-go/modules/orders/application/commands"
	"github.com/rai/commerce-monolith-go/modules/orders/application/queries"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	tokendomain "github.com/rai/commerce-monolith-go/modules/tokenization/domain"
	tokenhttp "github.com/rai/commerce-monolith-go/modules/tokenization/infrastructure/http"
)

// Handler handles HTTP requests for the orders module.
type Handler struct {
	placeOrder       *commands.PlaceOrderHandler
	getOrder         *queries.GetOrderHandler
	listClientOrders *queries.ListClientOrdersHandler
}

// RegisterRoutes registers the orders module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	placeOrder *commands.PlaceOrderHandler,
	getOrder *queries.GetOrderHandler,
	listClientOrders *queries.ListClientOrdersHandler,
) {
	h := &Handler{
		placeOrder:       placeOrder,
		getOrder:         getOrder,
		listClientOrders: listClientOrders,
	}

	mux.HandleFunc("POST /orders", h.handlePlaceOrder)
	mux.HandleFunc("GET /orders/{id}", h.handleGetOrder)
	mux.HandleFunc("GET /clients/{id}/orders", h.handleListClientOrders)
}

// Request/Response DTOs

type placeOrderRequest struct {
	ClientID        string `json:"client_id"`
	DeliveryAddress string `json:"delivery_address"`
	CardNumber      string `json:"card_number"`
	ExpirationDate  string `json:"expiration_date"`
	CVV             string `json:"cvv"`
	HolderName      string `json:"holder_name"`
}

type placeOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	if req.ClientID == "" {
		writeError(w, http.StatusBadRequest, "validation", "client_id is required")
		return
	}
	if err := tokenhttp.ValidateCard(req.CardNumber, req.ExpirationDate, req.CVV, req.HolderName); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	cmd := commands.PlaceOrderCommand{
		ClientID:        req.ClientID,
		DeliveryAddress: req.DeliveryAddress,
		CardNumber:      req.CardNumber,
		CardExpiration:  req.ExpirationDate,
		CardCVV:         req.CVV,
		CardHolder:      req.HolderName,
	}

	id, err := h.placeOrder.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	// The payment outcome is not known yet; the order settles async.
	writeJSON(w, http.StatusCreated, placeOrderResponse{
		ID:     id,
		Status: domain.StatusProcessing.String(),
	})
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	order, err := h.getOrder.Handle(r.Context(), queries.GetOrderQuery{OrderID: id})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) handleListClientOrders(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")

	orders, err := h.listClientOrders.Handle(r.Context(), queries.ListClientOrdersQuery{ClientID: clientID})
	if err != nil {
		handleError(w, err)
		return
	}

	if orders == nil {
		orders = []*queries.OrderDTO{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
	case errors.Is(err, tokendomain.ErrCardRejected):
		writeError(w, http.StatusUnprocessableEntity, "card_rejected", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrClientRequired):
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
