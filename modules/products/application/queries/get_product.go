// Package queries contains read use cases for the products module.
package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// ProductDTO is a read model for product data.
// Price is exposed in the smallest currency unit.
type ProductDTO struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceAmount int64     `json:"price_amount"`
	Currency    string    `json:"currency"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetProductQuery retrieves a product by ID.
type GetProductQuery struct {
	ProductID string
}

type GetProductHandler struct {
	repo domain.ProductRepository
}

func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*ProductDTO, error) {
	productID, err := domain.ParseProductID(query.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID: %w", err)
	}

	product, err := h.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return toProductDTO(product), nil
}

func toProductDTO(product *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:          product.ID().String(),
		SKU:         product.SKU(),
		Name:        product.Name(),
		Description: product.Description(),
		PriceAmount: product.Price().Amount(),
		Currency:    product.Price().Currency(),
		Quantity:    product.Quantity(),
		CreatedAt:   product.CreatedAt(),
		UpdatedAt:   product.UpdatedAt(),
	}
}
