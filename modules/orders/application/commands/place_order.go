// Package commands contains write use cases for the orders module.
package commands

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rai/commerce-monolith-go/internal/platform/eventbus"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
	tokendomain "github.com/rai/commerce-monolith-go/modules/tokenization/domain"
)

// PaymentQueue accepts an order for asynchronous payment processing.
type PaymentQueue interface {
	Enqueue(orderID string) error
}

// PlaceOrderCommand converts a client's open cart into an order.
type PlaceOrderCommand struct {
	ClientID        string
	DeliveryAddress string // optional; falls back to the client's address
	CardNumber      string
	CardExpiration  string
	CardCVV         string
	CardHolder      string
}

type PlaceOrderHandler struct {
	gate     tokendomain.Gate
	orders   domain.OrderRepository
	cards    domain.CardRepository
	clients  domain.ClientDirectory
	carts    domain.CartSource
	txScope  transaction.Scope
	registry eventbus.HandlerRegistry
	payments PaymentQueue
	tracer   trace.Tracer
}

func NewPlaceOrderHandler(
	gate tokendomain.Gate,
	orders domain.OrderRepository,
	cards domain.CardRepository,
	clients domain.ClientDirectory,
	carts domain.CartSource,
	txScope transaction.Scope,
	registry eventbus.HandlerRegistry,
	payments PaymentQueue,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		gate:     gate,
		orders:   orders,
		cards:    cards,
		clients:  clients,
		carts:    carts,
		txScope:  txScope,
		registry: registry,
		payments: payments,
		tracer:   otel.Tracer("orders"),
	}
}

// Handle executes order placement.
//
// Tokenization runs first, outside the transaction: it is pure, and a
// rejected card must leave no trace in storage. Everything else - card
// envelope, order row, cart fulfillment, the OrderPlacedEvent - commits
// or rolls back as one unit. Payment is enqueued only after commit, so
// the worker can never observe an order that later rolled back.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (string, error) {
	ctx, span := h.tracer.Start(ctx, "PlaceOrder",
		trace.WithAttributes(attribute.String("client.id", cmd.ClientID)))
	defer span.End()

	token, err := h.gate.Tokenize(ctx, tokendomain.Card{
		Number:     cmd.CardNumber,
		Expiration: cmd.CardExpiration,
		CVV:        cmd.CardCVV,
		Holder:     cmd.CardHolder,
	})
	if err != nil {
		return "", err
	}

	orderID, err := transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (string, error) {
		// A fresh publisher per attempt keeps Spanner transaction retries
		// from replaying events buffered by an aborted attempt.
		publisher := eventbus.NewTransactionalPublisher(h.registry, 0)

		card, err := domain.NewCreditCardDetails(token, cmd.CardNumber, cmd.CardExpiration, cmd.CardCVV, cmd.CardHolder)
		if err != nil {
			return "", err
		}
		if err := h.cards.Save(ctx, card); err != nil {
			return "", fmt.Errorf("saving card details: %w", err)
		}

		client, err := h.clients.Resolve(ctx, cmd.ClientID)
		if err != nil {
			return "", err
		}

		cartLines, err := h.carts.OpenLines(ctx, client.ID)
		if err != nil {
			return "", fmt.Errorf("reading cart: %w", err)
		}
		if len(cartLines) == 0 {
			return "", domain.ErrEmptyCart
		}

		lines := make([]domain.OrderLine, len(cartLines))
		for i, line := range cartLines {
			lines[i] = domain.OrderLine{
				ProductID: line.ProductID,
				SKU:       line.SKU,
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
		}

		deliveryAddress := cmd.DeliveryAddress
		if deliveryAddress == "" {
			deliveryAddress = client.Address
		}

		order, err := domain.NewOrder(client.ID, lines, deliveryAddress, token)
		if err != nil {
			return "", err
		}

		if err := h.orders.Save(ctx, order); err != nil {
			return "", fmt.Errorf("saving order: %w", err)
		}

		if err := publisher.Publish(ctx, order.PopDomainEvents()...); err != nil {
			return "", fmt.Errorf("publishing events: %w", err)
		}

		if err := h.carts.FulfillAll(ctx, client.ID); err != nil {
			return "", fmt.Errorf("fulfilling cart: %w", err)
		}

		if err := publisher.Flush(ctx); err != nil {
			return "", fmt.Errorf("flushing events: %w", err)
		}

		return order.ID().String(), nil
	})
	if err != nil {
		return "", err
	}

	span.SetAttributes(attribute.String("order.id", orderID))

	if err := h.payments.Enqueue(orderID); err != nil {
		// The order is committed; payment will not run. Surface the
		// failure instead of pretending the order is in flight.
		return "", fmt.Errorf("enqueueing payment for order %s: %w", orderID, err)
	}

	return orderID, nil
}
