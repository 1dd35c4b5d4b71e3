// Package queries contains read use cases for the carts module.
package queries

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/carts/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// CartItemDTO is one line of the cart read model, enriched with the
// current catalog snapshot of the product.
type CartItemDTO struct {
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	UnitPriceAmount int64  `json:"unit_price_amount"`
	Quantity        int    `json:"quantity"`
	SubtotalAmount  int64  `json:"subtotal_amount"`
}

// CartDTO is the full cart read model for one client.
type CartDTO struct {
	ClientID    string         `json:"client_id"`
	Items       []*CartItemDTO `json:"items"`
	TotalAmount int64          `json:"total_amount"`
	Currency    string         `json:"currency,omitempty"`
}

// GetCartQuery retrieves a client's open cart.
type GetCartQuery struct {
	ClientID string
}

type GetCartHandler struct {
	repo    domain.CartRepository
	catalog domain.Catalog
}

func NewGetCartHandler(repo domain.CartRepository, catalog domain.Catalog) *GetCartHandler {
	return &GetCartHandler{repo: repo, catalog: catalog}
}

func (h *GetCartHandler) Handle(ctx context.Context, query GetCartQuery) (*CartDTO, error) {
	items, err := h.repo.FindUnfulfilledByClient(ctx, query.ClientID)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}

	dto := &CartDTO{
		ClientID: query.ClientID,
		Items:    make([]*CartItemDTO, 0, len(items)),
	}

	var total types.Money
	for _, item := range items {
		snapshot, err := h.catalog.Lookup(ctx, item.ProductID())
		if err != nil {
			return nil, fmt.Errorf("resolving product %s: %w", item.ProductID(), err)
		}

		subtotal := snapshot.Price.Multiply(int64(item.Quantity()))
		if total.IsZero() && total.Currency() == "" {
			total = subtotal
		} else {
			total, err = total.Add(subtotal)
			if err != nil {
				return nil, err
			}
		}

		dto.Items = append(dto.Items, &CartItemDTO{
			ProductID:       snapshot.ID,
			SKU:             snapshot.SKU,
			Name:            snapshot.Name,
			UnitPriceAmount: snapshot.Price.Amount(),
			Quantity:        item.Quantity(),
			SubtotalAmount:  subtotal.Amount(),
		})
	}

	dto.TotalAmount = total.Amount()
	dto.Currency = total.Currency()
	return dto, nil
}
