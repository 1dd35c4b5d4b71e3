// Package domain contains the business entities and rules for products.
package domain

import (
	"strings"
	"time"

	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// Product is the aggregate root for the product catalog.
type Product struct {
	id          ProductID
	sku         string
	name        string
	description string
	price       types.Money
	quantity    int // units in stock
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a new Product with validated inputs.
func NewProduct(sku, name, description string, price types.Money, quantity int) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrSKURequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if price.IsNegative() {
		return nil, ErrPriceNegative
	}
	if quantity < 0 {
		return nil, ErrQuantityNegative
	}

	now := time.Now().UTC()
	return &Product{
		id:          NewProductID(),
		sku:         sku,
		name:        name,
		description: strings.TrimSpace(description),
		price:       price,
		quantity:    quantity,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstitute recreates a Product from persistence.
func Reconstitute(
	id ProductID,
	sku, name, description string,
	price types.Money,
	quantity int,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		sku:         sku,
		name:        name,
		description: description,
		price:       price,
		quantity:    quantity,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Product) ID() ProductID        { return p.id }
func (p *Product) SKU() string          { return p.sku }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() types.Money   { return p.price }
func (p *Product) Quantity() int        { return p.quantity }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

// UpdateDetails replaces the product's catalog information.
// SKU is immutable once assigned.
func (p *Product) UpdateDetails(name, description string, price types.Money, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if price.IsNegative() {
		return ErrPriceNegative
	}
	if quantity < 0 {
		return ErrQuantityNegative
	}

	p.name = name
	p.description = strings.TrimSpace(description)
	p.price = price
	p.quantity = quantity
	p.updatedAt = time.Now().UTC()
	return nil
}
