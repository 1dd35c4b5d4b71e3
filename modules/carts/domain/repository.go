package domain

import "context"

// CartRepository defines persistence operations for cart items.
type CartRepository interface {
	Save(ctx context.Context, item *CartItem) error
	// FindUnfulfilledByClient returns the client's open cart in
	// insertion order. An empty cart is an empty slice, not an error.
	FindUnfulfilledByClient(ctx context.Context, clientID string) ([]*CartItem, error)
	// FindUnfulfilled returns the single open line for (client, product),
	// or ErrCartItemNotFound.
	FindUnfulfilled(ctx context.Context, clientID, productID string) (*CartItem, error)
	Delete(ctx context.Context, id CartItemID) error
	// FulfillAllByClient marks every open line for the client fulfilled.
	FulfillAllByClient(ctx context.Context, clientID string) error
}
