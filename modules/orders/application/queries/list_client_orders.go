package queries

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/orders/domain"
)

// ListClientOrdersQuery retrieves all orders placed by a client.
type ListClientOrdersQuery struct {
	ClientID string
}

type ListClientOrdersHandler struct {
	repo    domain.OrderRepository
	clients domain.ClientDirectory
}

func NewListClientOrdersHandler(repo domain.OrderRepository, clients domain.ClientDirectory) *ListClientOrdersHandler {
	return &ListClientOrdersHandler{repo: repo, clients: clients}
}

func (h *ListClientOrdersHandler) Handle(ctx context.Context, query ListClientOrdersQuery) ([]*OrderDTO, error) {
	// Listing for an unknown client is a 404, not an empty list.
	if _, err := h.clients.Resolve(ctx, query.ClientID); err != nil {
		return nil, err
	}

	orders, err := h.repo.FindByClient(ctx, query.ClientID)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	dtos := make([]*OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = toOrderDTO(order)
	}
	return dtos, nil
}
