package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/carts/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// RemoveProductCommand takes units of a product out of a client's cart.
// Quantity zero removes the whole line.
type RemoveProductCommand struct {
	ClientID  string
	ProductID string
	Quantity  int
}

type RemoveProductHandler struct {
	repo    domain.CartRepository
	txScope transaction.Scope
}

func NewRemoveProductHandler(repo domain.CartRepository, txScope transaction.Scope) *RemoveProductHandler {
	return &RemoveProductHandler{repo: repo, txScope: txScope}
}

func (h *RemoveProductHandler) Handle(ctx context.Context, cmd RemoveProductCommand) error {
	if cmd.Quantity < 0 {
		return domain.ErrQuantityInvalid
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		item, err := h.repo.FindUnfulfilled(ctx, cmd.ClientID, cmd.ProductID)
		if err != nil {
			return err
		}

		if cmd.Quantity == 0 || cmd.Quantity >= item.Quantity() {
			if err := h.repo.Delete(ctx, item.ID()); err != nil {
				return fmt.Errorf("deleting cart item: %w", err)
			}
			return nil
		}

		if _, err := item.DecreaseQuantity(cmd.Quantity); err != nil {
			return err
		}
		if err := h.repo.Save(ctx, item); err != nil {
			return fmt.Errorf("saving cart item: %w", err)
		}
		return nil
	})
}
