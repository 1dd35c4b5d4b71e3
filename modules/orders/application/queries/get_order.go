// Package queries contains read use cases for the orders module.
package queries

import (
	"context"
	"time"

	"github.com/rai/commerce-monolith-go/modules/orders/domain"
)

// OrderLineDTO is one frozen line of an order read model.
type OrderLineDTO struct {
	ProductID       string `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	UnitPriceAmount int64  `json:"unit_price_amount"`
	SubtotalAmount  int64  `json:"subtotal_amount"`
}

// OrderDTO is a read model for order data.
type OrderDTO struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	Status          string          `json:"status"`
	TotalAmount     int64           `json:"total_amount"`
	Currency        string          `json:"currency"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	Lines           []*OrderLineDTO `json:"lines"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// GetOrderQuery retrieves an order by ID.
type GetOrderQuery struct {
	OrderID string
}

type GetOrderHandler struct {
	repo domain.OrderRepository
}

func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

func (h *GetOrderHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDTO, error) {
	orderID, err := domain.ParseOrderID(query.OrderID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	order, err := h.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return toOrderDTO(order), nil
}

func toOrderDTO(order *domain.Order) *OrderDTO {
	lines := make([]*OrderLineDTO, len(order.Lines()))
	for i, line := range order.Lines() {
		lines[i] = &OrderLineDTO{
			ProductID:       line.ProductID,
			SKU:             line.SKU,
			Name:            line.Name,
			Quantity:        line.Quantity,
			UnitPriceAmount: line.UnitPrice.Amount(),
			SubtotalAmount:  line.Subtotal().Amount(),
		}
	}

	return &OrderDTO{
		ID:              order.ID().String(),
		ClientID:        order.ClientID(),
		Status:          order.Status().String(),
		TotalAmount:     order.Total().Amount(),
		Currency:        order.Total().Currency(),
		DeliveryAddress: order.DeliveryAddress(),
		Lines:           lines,
		CreatedAt:       order.CreatedAt(),
		UpdatedAt:       order.UpdatedAt(),
	}
}
