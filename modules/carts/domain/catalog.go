package domain

import (
	"context"

	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// ProductSnapshot is the slice of catalog data the cart needs.
type ProductSnapshot struct {
	ID    string
	SKU   string
	Name  string
	Price types.Money
}

// Catalog is the anti-corruption interface through which the cart
// module reads the product catalog. Implemented by an adapter over the
// products module.
type Catalog interface {
	// Lookup returns the snapshot for a product, or ErrProductUnknown.
	Lookup(ctx context.Context, productID string) (ProductSnapshot, error)
}

// ClientDirectory is the anti-corruption interface through which the
// cart module checks that a client exists.
type ClientDirectory interface {
	Exists(ctx context.Context, clientID string) (bool, error)
}
