// Package acl adapts other modules' repositories to the cart domain's
// anti-corruption interfaces.
package acl

import (
	"context"
	"errors"
	"fmt"

	cartsdomain "github.com/rai/commerce-monolith-go/modules/carts/domain"
	clientsdomain "github.com/rai/commerce-monolith-go/modules/clients/domain"
	productsdomain "github.com/rai/commerce-monolith-go/modules/products/domain"
)

// ProductCatalog adapts the products repository to the cart Catalog port.
type ProductCatalog struct {
	products productsdomain.ProductRepository
}

func NewProductCatalog(products productsdomain.ProductRepository) *ProductCatalog {
	return &ProductCatalog{products: products}
}

// Compile-time interface check.
var _ cartsdomain.Catalog = (*ProductCatalog)(nil)

func (c *ProductCatalog) Lookup(ctx context.Context, productID string) (cartsdomain.ProductSnapshot, error) {
	id, err := productsdomain.ParseProductID(productID)
	if err != nil {
		return cartsdomain.ProductSnapshot{}, cartsdomain.ErrProductUnknown
	}

	product, err := c.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, productsdomain.ErrProductNotFound) {
			return cartsdomain.ProductSnapshot{}, cartsdomain.ErrProductUnknown
		}
		return cartsdomain.ProductSnapshot{}, fmt.Errorf("looking up product: %w", err)
	}

	return cartsdomain.ProductSnapshot{
		ID:    product.ID().String(),
		SKU:   product.SKU(),
		Name:  product.Name(),
		Price: product.Price(),
	}, nil
}

// ClientDirectory adapts the clients repository to the cart's client
// existence check.
type ClientDirectory struct {
	clients clientsdomain.ClientRepository
}

func NewClientDirectory(clients clientsdomain.ClientRepository) *ClientDirectory {
	return &ClientDirectory{clients: clients}
}

// Compile-time interface check.
var _ cartsdomain.ClientDirectory = (*ClientDirectory)(nil)

func (d *ClientDirectory) Exists(ctx context.Context, clientID string) (bool, error) {
	id, err := clientsdomain.ParseClientID(clientID)
	if err != nil {
		return false, nil
	}

	if _, err := d.clients.FindByID(ctx, id); err != nil {
		if errors.Is(err, clientsdomain.ErrClientNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up client: %w", err)
	}
	return true, nil
}
