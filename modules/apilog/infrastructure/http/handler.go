// Package http provides HTTP handlers for the apilog module.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rai/commerce-monolith-go/modules/apilog/application"
)

// Handler serves the API audit trail.
type Handler struct {
	listLogs *application.ListLogsHandler
}

// RegisterRoutes registers the apilog module routes to the given mux.
func RegisterRoutes(mux *http.ServeMux, listLogs *application.ListLogsHandler) {
	h := &Handler{listLogs: listLogs}

	mux.HandleFunc("GET /api-logs", h.handleListLogs)
}

func (h *Handler) handleListLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.listLogs.Handle(r.Context(), limit)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"kind": "internal", "error": "internal server error"})
		return
	}

	if logs == nil {
		logs = []*application.RecordDTO{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(logs)
}
