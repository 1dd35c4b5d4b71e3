package domain

import "context"

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id OrderID) (*Order, error)
	// FindByClient returns the client's orders, oldest first.
	FindByClient(ctx context.Context, clientID string) ([]*Order, error)
}
