// Package acl adapts other modules' repositories to the order domain's
// anti-corruption interfaces.
package acl

import (
	"context"
	"errors"
	"fmt"

	cartsdomain "github.com/rai/commerce-monolith-go/modules/carts/domain"
	clientsdomain "github.com/rai/commerce-monolith-go/modules/clients/domain"
	ordersdomain "github.com/rai/commerce-monolith-go/modules/orders/domain"
)

// ClientDirectory adapts the clients repository to the orders module.
type ClientDirectory struct {
	clients clientsdomain.ClientRepository
}

func NewClientDirectory(clients clientsdomain.ClientRepository) *ClientDirectory {
	return &ClientDirectory{clients: clients}
}

// Compile-time interface check.
var _ ordersdomain.ClientDirectory = (*ClientDirectory)(nil)

func (d *ClientDirectory) Resolve(ctx context.Context, clientID string) (ordersdomain.ClientInfo, error) {
	id, err := clientsdomain.ParseClientID(clientID)
	if err != nil {
		return ordersdomain.ClientInfo{}, ordersdomain.ErrClientNotFound
	}

	client, err := d.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientsdomain.ErrClientNotFound) {
			return ordersdomain.ClientInfo{}, ordersdomain.ErrClientNotFound
		}
		return ordersdomain.ClientInfo{}, fmt.Errorf("resolving client: %w", err)
	}

	return ordersdomain.ClientInfo{
		ID:      client.ID().String(),
		Name:    client.Name(),
		Email:   client.Email().String(),
		Address: client.Address(),
	}, nil
}

// CartSource adapts the carts repository plus the cart catalog to the
// orders module: open lines come back already joined with the catalog
// snapshot so placement can freeze them onto the order.
type CartSource struct {
	carts   cartsdomain.CartRepository
	catalog cartsdomain.Catalog
}

func NewCartSource(carts cartsdomain.CartRepository, catalog cartsdomain.Catalog) *CartSource {
	return &CartSource{carts: carts, catalog: catalog}
}

// Compile-time interface check.
var _ ordersdomain.CartSource = (*CartSource)(nil)

func (s *CartSource) OpenLines(ctx context.Context, clientID string) ([]ordersdomain.CartLine, error) {
	items, err := s.carts.FindUnfulfilledByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}

	lines := make([]ordersdomain.CartLine, 0, len(items))
	for _, item := range items {
		snapshot, err := s.catalog.Lookup(ctx, item.ProductID())
		if err != nil {
			return nil, fmt.Errorf("resolving product %s: %w", item.ProductID(), err)
		}

		lines = append(lines, ordersdomain.CartLine{
			ProductID: snapshot.ID,
			SKU:       snapshot.SKU,
			Name:      snapshot.Name,
			Quantity:  item.Quantity(),
			UnitPrice: snapshot.Price,
		})
	}
	return lines, nil
}

func (s *CartSource) FulfillAll(ctx context.Context, clientID string) error {
	return s.carts.FulfillAllByClient(ctx, clientID)
}
