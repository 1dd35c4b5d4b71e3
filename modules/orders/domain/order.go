// Package domain contains business entities and rules for orders.
package domain

import (
	"time"

	"github.com/rai/commerce-monolith-go/modules/shared/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// Order is the aggregate root for the order bounded context.
//
// Lines are frozen at placement: sku, name, and unit price are copied
// from the catalog, so later product changes never alter a placed order.
type Order struct {
	domain.AggregateRoot
	id              OrderID
	clientID        string
	lines           []OrderLine
	total           types.Money
	deliveryAddress string
	cardToken       string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

// OrderLine is one frozen product line of an order.
type OrderLine struct {
	ProductID string
	SKU       string
	Name      string
	Quantity  int
	UnitPrice types.Money
}

func (l OrderLine) Subtotal() types.Money {
	return l.UnitPrice.Multiply(int64(l.Quantity))
}

// NewOrder creates a PROCESSING order from the given cart lines.
// The total is the exact integer sum of quantity x unit price per line.
// An OrderPlacedEvent is collected for in-transaction publication.
func NewOrder(clientID string, lines []OrderLine, deliveryAddress, cardToken string) (*Order, error) {
	if clientID == "" {
		return nil, ErrClientRequired
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if cardToken == "" {
		return nil, ErrCardTokenRequired
	}

	total := lines[0].Subtotal()
	for _, line := range lines[1:] {
		sum, err := total.Add(line.Subtotal())
		if err != nil {
			return nil, err
		}
		total = sum
	}

	now := time.Now().UTC()
	order := &Order{
		id:              NewOrderID(),
		clientID:        clientID,
		lines:           lines,
		total:           total,
		deliveryAddress: deliveryAddress,
		cardToken:       cardToken,
		status:          StatusProcessing,
		createdAt:       now,
		updatedAt:       now,
	}

	order.AddDomainEvent(&contracts.OrderPlacedEvent{
		BaseEvent:   events.NewBaseEvent(contracts.OrderPlacedEventType, order.id.String()),
		OrderID:     order.id.String(),
		ClientID:    clientID,
		TotalAmount: total.Amount(),
		Currency:    total.Currency(),
	})

	return order, nil
}

// Reconstitute rebuilds an order from persistence.
func Reconstitute(
	id OrderID,
	clientID string,
	lines []OrderLine,
	total types.Money,
	deliveryAddress, cardToken string,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		clientID:        clientID,
		lines:           lines,
		total:           total,
		deliveryAddress: deliveryAddress,
		cardToken:       cardToken,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Getters

func (o *Order) ID() OrderID             { return o.id }
func (o *Order) ClientID() string        { return o.clientID }
func (o *Order) Lines() []OrderLine      { return o.lines }
func (o *Order) Total() types.Money      { return o.total }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) CardToken() string       { return o.cardToken }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// Complete marks the payment as settled.
// Valid only from PROCESSING; the transition is one-shot.
func (o *Order) Complete() error {
	if o.status != StatusProcessing {
		return ErrOrderSettled
	}
	o.status = StatusCompleted
	o.updatedAt = time.Now().UTC()
	return nil
}

// Fail marks the payment as declined after the retry budget ran out.
// Valid only from PROCESSING; the transition is one-shot.
func (o *Order) Fail() error {
	if o.status != StatusProcessing {
		return ErrOrderSettled
	}
	o.status = StatusFailed
	o.updatedAt = time.Now().UTC()
	return nil
}
