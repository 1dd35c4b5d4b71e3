package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// DeleteProductCommand removes a product from the catalog.
type DeleteProductCommand struct {
	ProductID string
}

type DeleteProductHandler struct {
	repo domain.ProductRepository
}

func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	productID, err := domain.ParseProductID(cmd.ProductID)
	if err != nil {
		return fmt.Errorf("invalid product ID: %w", err)
	}

	if _, err := h.repo.FindByID(ctx, productID); err != nil {
		return fmt.Errorf("finding product: %w", err)
	}

	if err := h.repo.Delete(ctx, productID); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return nil
}
