// Package domain contains the business entities and rules for carts.
//
// A cart is not an aggregate of its own: it is the set of unfulfilled
// cart items belonging to a client. Placing an order marks the whole
// set fulfilled in one transaction.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line in a client's open cart.
// Invariant: at most one unfulfilled item exists per (client, product);
// adding the same product again accumulates quantity on the existing row.
type CartItem struct {
	id        CartItemID
	clientID  string
	productID string
	quantity  int
	fulfilled bool
	createdAt time.Time
	updatedAt time.Time
}

// CartItemID represents a unique identifier for a cart item.
type CartItemID struct {
	value string
}

func NewCartItemID() CartItemID {
	return CartItemID{value: uuid.New().String()}
}

func ParseCartItemID(s string) (CartItemID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return CartItemID{}, ErrInvalidCartItemID
	}
	return CartItemID{value: s}, nil
}

func (id CartItemID) String() string { return id.value }

// NewCartItem creates an unfulfilled cart item.
func NewCartItem(clientID, productID string, quantity int) (*CartItem, error) {
	if clientID == "" {
		return nil, ErrClientRequired
	}
	if productID == "" {
		return nil, ErrProductRequired
	}
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}

	now := time.Now().UTC()
	return &CartItem{
		id:        NewCartItemID(),
		clientID:  clientID,
		productID: productID,
		quantity:  quantity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstituteCartItem recreates a CartItem from persistence.
func ReconstituteCartItem(
	id CartItemID,
	clientID, productID string,
	quantity int,
	fulfilled bool,
	createdAt, updatedAt time.Time,
) *CartItem {
	return &CartItem{
		id:        id,
		clientID:  clientID,
		productID: productID,
		quantity:  quantity,
		fulfilled: fulfilled,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (i *CartItem) ID() CartItemID       { return i.id }
func (i *CartItem) ClientID() string     { return i.clientID }
func (i *CartItem) ProductID() string    { return i.productID }
func (i *CartItem) Quantity() int        { return i.quantity }
func (i *CartItem) Fulfilled() bool      { return i.fulfilled }
func (i *CartItem) CreatedAt() time.Time { return i.createdAt }
func (i *CartItem) UpdatedAt() time.Time { return i.updatedAt }

// IncreaseQuantity accumulates more units onto the line.
func (i *CartItem) IncreaseQuantity(by int) error {
	if by <= 0 {
		return ErrQuantityInvalid
	}
	i.quantity += by
	i.updatedAt = time.Now().UTC()
	return nil
}

// DecreaseQuantity removes units from the line and reports the remainder.
// Callers delete the line when the remainder reaches zero.
func (i *CartItem) DecreaseQuantity(by int) (int, error) {
	if by <= 0 {
		return i.quantity, ErrQuantityInvalid
	}
	i.quantity -= by
	if i.quantity < 0 {
		i.quantity = 0
	}
	i.updatedAt = time.Now().UTC()
	return i.quantity, nil
}

// Fulfill marks the line as consumed by an order.
func (i *CartItem) Fulfill() {
	i.fulfilled = true
	i.updatedAt = time.Now().UTC()
}
