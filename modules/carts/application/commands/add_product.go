// Package commands contains write use cases for the carts module.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/carts/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// AddProductCommand puts units of a product into a client's cart.
type AddProductCommand struct {
	ClientID  string
	ProductID string
	Quantity  int
}

type AddProductHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
	clients domain.ClientDirectory
	txScope transaction.Scope
}

func NewAddProductHandler(
	repo domain.CartRepository,
	catalog domain.Catalog,
	clients domain.ClientDirectory,
	txScope transaction.Scope,
) *AddProductHandler {
	return &AddProductHandler{repo: repo, catalog: catalog, clients: clients, txScope: txScope}
}

// Handle adds the product to the cart, accumulating quantity onto an
// existing unfulfilled line so the (client, product) invariant holds.
func (h *AddProductHandler) Handle(ctx context.Context, cmd AddProductCommand) error {
	if cmd.Quantity <= 0 {
		return domain.ErrQuantityInvalid
	}

	exists, err := h.clients.Exists(ctx, cmd.ClientID)
	if err != nil {
		return fmt.Errorf("checking client: %w", err)
	}
	if !exists {
		return domain.ErrClientUnknown
	}

	if _, err := h.catalog.Lookup(ctx, cmd.ProductID); err != nil {
		return err
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		item, err := h.repo.FindUnfulfilled(ctx, cmd.ClientID, cmd.ProductID)
		switch {
		case errors.Is(err, domain.ErrCartItemNotFound):
			item, err = domain.NewCartItem(cmd.ClientID, cmd.ProductID, cmd.Quantity)
			if err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("finding cart item: %w", err)
		default:
			if err := item.IncreaseQuantity(cmd.Quantity); err != nil {
				return err
			}
		}

		if err := h.repo.Save(ctx, item); err != nil {
			return fmt.Errorf("saving cart item: %w", err)
		}
		return nil
	})
}
