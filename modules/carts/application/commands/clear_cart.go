package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/carts/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// ClearCartCommand drops every open line in a client's cart.
type ClearCartCommand struct {
	ClientID string
}

type ClearCartHandler struct {
	repo    domain.CartRepository
	txScope transaction.Scope
}

func NewClearCartHandler(repo domain.CartRepository, txScope transaction.Scope) *ClearCartHandler {
	return &ClearCartHandler{repo: repo, txScope: txScope}
}

func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		items, err := h.repo.FindUnfulfilledByClient(ctx, cmd.ClientID)
		if err != nil {
			return fmt.Errorf("reading cart: %w", err)
		}

		for _, item := range items {
			if err := h.repo.Delete(ctx, item.ID()); err != nil {
				return fmt.Errorf("deleting cart item: %w", err)
			}
		}
		return nil
	})
}
