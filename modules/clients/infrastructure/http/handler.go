// Package http provides HTTP handlers for the clients module.
// Handlers translate HTTP requests into commands/queries and format responses.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rai/commerce-monolith-go/modules/clients/application/commands"
	"github.com/rai/commerce-monolith-go/modules/clients/application/queries"
	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

// Handler handles HTTP requests for the clients module.
type Handler struct {
	createClient *commands.CreateClientHandler
	updateClient *commands.UpdateClientHandler
	deleteClient *commands.DeleteClientHandler
	getClient    *queries.GetClientHandler
	listClients  *queries.ListClientsHandler
}

// RegisterRoutes registers the clients module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createClient *commands.CreateClientHandler,
	updateClient *commands.UpdateClientHandler,
	deleteClient *commands.DeleteClientHandler,
	getClient *queries.GetClientHandler,
	listClients *queries.ListClientsHandler,
) {
	h := &Handler{
		createClient: createClient,
		updateClient: updateClient,
		deleteClient: deleteClient,
		getClient:    getClient,
		listClients:  listClients,
	}

	mux.HandleFunc("GET /clients", h.handleListClients)
	mux.HandleFunc("POST /clients", h.handleCreateClient)
	mux.HandleFunc("GET /clients/{id}", h.handleGetClient)
	mux.HandleFunc("PUT /clients/{id}", h.handleUpdateClient)
	mux.HandleFunc("DELETE /clients/{id}", h.handleDeleteClient)
}

// Request/Response DTOs

type clientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type createClientResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Handlers

func (h *Handler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.CreateClientCommand{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	id, err := h.createClient.Handle(r.Context(), cmd)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createClientResponse{ID: id})
}

func (h *Handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	client, err := h.getClient.Handle(r.Context(), queries.GetClientQuery{ClientID: id})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, client)
}

func (h *Handler) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.UpdateClientCommand{
		ClientID: id,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := h.updateClient.Handle(r.Context(), cmd); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.deleteClient.Handle(r.Context(), commands.DeleteClientCommand{ClientID: id}); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.listClients.Handle(r.Context(), queries.ListClientsQuery{
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Helper functions

func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPhoneTaken):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidClientID),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrEmailInvalid),
		errors.Is(err, domain.ErrPhoneRequired),
		errors.Is(err, domain.ErrPhoneInvalid):
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
