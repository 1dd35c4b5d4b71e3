// Package http provides HTTP handlers for the tokenization module.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/rai/commerce-monolith-go/modules/tokenization/domain"
)

type Handler struct {
	gate domain.Gate
}

// RegisterRoutes registers the tokenization module routes to the given mux.
func RegisterRoutes(mux *http.ServeMux, gate domain.Gate) {
	h := &Handler{gate: gate}

	mux.HandleFunc("POST /tokenize", h.handleTokenize)
}

type tokenizeRequest struct {
	CardNumber     string `json:"card_number"`
	ExpirationDate string `json:"expiration_date"`
	CVV            string `json:"cvv"`
	HolderName     string `json:"holder_name"`
}

type tokenizeResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

var (
	cardNumberRegex = regexp.MustCompile(`^\d{13,19}$`)
	expirationRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRegex        = regexp.MustCompile(`^\d{3,4}$`)
)

// ValidateCard checks the card fields are well-formed. The gate itself
// assumes validated input, so every caller goes through this first.
func ValidateCard(number, expiration, cvv, holder string) error {
	if !cardNumberRegex.MatchString(number) {
		return errors.New("card number must be 13-19 digits")
	}
	if !expirationRegex.MatchString(expiration) {
		return errors.New("expiration date must be MM/YY")
	}
	if !cvvRegex.MatchString(cvv) {
		return errors.New("cvv must be 3 or 4 digits")
	}
	if holder == "" {
		return errors.New("holder name must not be blank")
	}
	return nil
}

func (h *Handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	var req tokenizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	if err := ValidateCard(req.CardNumber, req.ExpirationDate, req.CVV, req.HolderName); err != nil {
		writeError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	token, err := h.gate.Tokenize(r.Context(), domain.Card{
		Number:     req.CardNumber,
		Expiration: req.ExpirationDate,
		CVV:        req.CVV,
		Holder:     req.HolderName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCardRejected):
			writeError(w, http.StatusUnprocessableEntity, "card_rejected", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokenizeResponse{Token: token})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Kind: kind, Error: message})
}
