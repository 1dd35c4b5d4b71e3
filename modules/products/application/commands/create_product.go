// Package commands contains write use cases for the products module.
package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// CreateProductCommand adds a product to the catalog.
// Price is given in the smallest currency unit.
type CreateProductCommand struct {
	SKU         string
	Name        string
	Description string
	PriceAmount int64
	Currency    string
	Quantity    int
}

type CreateProductHandler struct {
	repo    domain.ProductRepository
	txScope transaction.Scope
}

func NewCreateProductHandler(repo domain.ProductRepository, txScope transaction.Scope) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, txScope: txScope}
}

func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (string, error) {
	price, err := types.NewMoney(cmd.PriceAmount, cmd.Currency)
	if err != nil {
		return "", fmt.Errorf("invalid price: %w", err)
	}

	product, err := domain.NewProduct(cmd.SKU, cmd.Name, cmd.Description, price, cmd.Quantity)
	if err != nil {
		return "", err
	}

	return transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (string, error) {
		taken, err := h.repo.SKUInUse(ctx, product.SKU(), domain.ProductID{})
		if err != nil {
			return "", fmt.Errorf("checking SKU uniqueness: %w", err)
		}
		if taken {
			return "", domain.ErrSKUTaken
		}

		if err := h.repo.Save(ctx, product); err != nil {
			return "", fmt.Errorf("saving product: %w", err)
		}

		return product.ID().String(), nil
	})
}
