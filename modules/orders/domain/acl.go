package domain

import (
	"context"

	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// ClientInfo is the slice of client data order placement needs.
type ClientInfo struct {
	ID      string
	Name    string
	Email   string
	Address string
}

// ClientDirectory is the anti-corruption interface through which the
// orders module resolves clients. Implemented by an adapter over the
// clients module.
type ClientDirectory interface {
	// Resolve returns the client, or ErrClientNotFound.
	Resolve(ctx context.Context, clientID string) (ClientInfo, error)
}

// CartLine is one open cart line with its catalog snapshot, ready to be
// frozen onto an order.
type CartLine struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  int
	UnitPrice types.Money
}

// CartSource is the anti-corruption interface through which the orders
// module consumes a client's cart. Both methods are transaction-aware:
// inside Scope.Execute they observe and mutate the same transaction.
type CartSource interface {
	// OpenLines returns the client's unfulfilled cart lines in
	// insertion order. An empty cart is an empty slice.
	OpenLines(ctx context.Context, clientID string) ([]CartLine, error)
	// FulfillAll marks every open line for the client consumed.
	FulfillAll(ctx context.Context, clientID string) error
}
