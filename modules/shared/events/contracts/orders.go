// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import "github.com/rai/commerce-monolith-go/modules/shared/events"

const (
	OrderPlacedEventType    events.EventType = "orders.OrderPlaced"
	PaymentSettledEventType events.EventType = "orders.PaymentSettled"
)

// OrderPlacedEvent is published within the order-creation transaction
// once a PROCESSING order has been persisted.
type OrderPlacedEvent struct {
	events.BaseEvent
	OrderID     string `json:"order_id"`
	ClientID    string `json:"client_id"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

// PaymentSettledEvent is published exactly once per order, after the
// payment worker resolves the order to a terminal status. Settled is
// true for COMPLETED and false for FAILED.
type PaymentSettledEvent struct {
	events.BaseEvent
	OrderID     string `json:"order_id"`
	ClientID    string `json:"client_id"`
	ClientEmail string `json:"client_email"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
	Settled     bool   `json:"settled"`
	Attempts    int    `json:"attempts"`
}
