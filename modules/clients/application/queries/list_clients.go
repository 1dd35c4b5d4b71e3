package queries

import (
	"context"

	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

// ClientListDTO contains a paginated list of clients.
type ClientListDTO struct {
	Clients    []*ClientDTO `json:"clients"`
	TotalCount int          `json:"total_count"`
	Offset     int          `json:"offset"`
	Limit      int          `json:"limit"`
}

// ListClientsQuery retrieves clients with pagination.
type ListClientsQuery struct {
	Offset int
	Limit  int
}

type ListClientsHandler struct {
	repo domain.ClientRepository
}

func NewListClientsHandler(repo domain.ClientRepository) *ListClientsHandler {
	return &ListClientsHandler{repo: repo}
}

func (h *ListClientsHandler) Handle(ctx context.Context, query ListClientsQuery) (*ClientListDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	clients, total, err := h.repo.FindAll(ctx, query.Offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ClientDTO, len(clients))
	for i, client := range clients {
		dtos[i] = toClientDTO(client)
	}

	return &ClientListDTO{
		Clients:    dtos,
		TotalCount: total,
		Offset:     query.Offset,
		Limit:      limit,
	}, nil
}
