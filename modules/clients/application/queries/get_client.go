// Package queries contains read use cases for the clients module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

// ClientDTO is a read model for client data.
type ClientDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetClientQuery retrieves a client by ID.
type GetClientQuery struct {
	ClientID string
}

type GetClientHandler struct {
	repo domain.ClientRepository
}

func NewGetClientHandler(repo domain.ClientRepository) *GetClientHandler {
	return &GetClientHandler{repo: repo}
}

func (h *GetClientHandler) Handle(ctx context.Context, query GetClientQuery) (*ClientDTO, error) {
	clientID, err := domain.ParseClientID(query.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID: %w", err)
	}

	client, err := h.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return toClientDTO(client), nil
}

func toClientDTO(client *domain.Client) *ClientDTO {
	return &ClientDTO{
		ID:        client.ID().String(),
		Name:      client.Name(),
		Email:     client.Email().String(),
		Phone:     client.Phone().String(),
		Address:   client.Address(),
		CreatedAt: client.CreatedAt(),
		UpdatedAt: client.UpdatedAt(),
	}
}
