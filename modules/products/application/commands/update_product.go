package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// UpdateProductCommand replaces a product's catalog details.
// The SKU cannot be changed.
type UpdateProductCommand struct {
	ProductID   string
	Name        string
	Description string
	PriceAmount int64
	Currency    string
	Quantity    int
}

type UpdateProductHandler struct {
	repo    domain.ProductRepository
	txScope transaction.Scope
}

func NewUpdateProductHandler(repo domain.ProductRepository, txScope transaction.Scope) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, txScope: txScope}
}

func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) error {
	productID, err := domain.ParseProductID(cmd.ProductID)
	if err != nil {
		return fmt.Errorf("invalid product ID: %w", err)
	}

	price, err := types.NewMoney(cmd.PriceAmount, cmd.Currency)
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		product, err := h.repo.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("finding product: %w", err)
		}

		if err := product.UpdateDetails(cmd.Name, cmd.Description, price, cmd.Quantity); err != nil {
			return err
		}

		if err := h.repo.Save(ctx, product); err != nil {
			return fmt.Errorf("saving product: %w", err)
		}

		return nil
	})
}
