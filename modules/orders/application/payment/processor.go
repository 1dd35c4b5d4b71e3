// Package payment settles orders asynchronously after placement.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/chance"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// Processor drives an order from PROCESSING to a terminal status.
//
// Payment itself is simulated by an injected rejection draw; a failed
// draw is a declined attempt. The processor makes up to maxRetries+1
// sequential attempts, persists the terminal status in its own
// transaction, and publishes exactly one settlement event afterwards.
type Processor struct {
	orders     domain.OrderRepository
	clients    domain.ClientDirectory
	txScope    transaction.Scope
	reject     chance.Rejector
	maxRetries int
	bus        events.Publisher
	pool       *worker.Pool
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewProcessor(
	orders domain.OrderRepository,
	clients domain.ClientDirectory,
	txScope transaction.Scope,
	reject chance.Rejector,
	maxRetries int,
	bus events.Publisher,
	pool *worker.Pool,
	logger *slog.Logger,
) *Processor {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		orders:     orders,
		clients:    clients,
		txScope:    txScope,
		reject:     reject,
		maxRetries: maxRetries,
		bus:        bus,
		pool:       pool,
		logger:     logger,
		tracer:     otel.Tracer("orders.payment"),
	}
}

// Enqueue hands the order to the worker pool. The caller returns
// immediately; Process runs on a pool goroutine with the pool's context.
func (p *Processor) Enqueue(orderID string) error {
	return p.pool.Submit(func(ctx context.Context) {
		p.Process(ctx, orderID)
	})
}

// Process settles one order. Never returns an error: every failure mode
// ends in a logged outcome, because there is no caller left to tell.
func (p *Processor) Process(ctx context.Context, orderID string) {
	ctx, span := p.tracer.Start(ctx, "ProcessPayment",
		trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	id, err := domain.ParseOrderID(orderID)
	if err != nil {
		p.logger.Error("payment dropped: bad order id", slog.String("order_id", orderID))
		return
	}

	order, err := p.orders.FindByID(ctx, id)
	if err != nil {
		// A missing order means the placement rolled back or the id is
		// stale; there is nothing to retry against.
		p.logger.Error("payment dropped: order not found",
			slog.String("order_id", orderID),
			slog.String("error", err.Error()),
		)
		return
	}
	if order.Status().IsTerminal() {
		p.logger.Warn("payment skipped: order already settled",
			slog.String("order_id", orderID),
			slog.String("status", order.Status().String()),
		)
		return
	}

	settled, attempts := p.attempt()
	span.SetAttributes(
		attribute.Bool("payment.settled", settled),
		attribute.Int("payment.attempts", attempts),
	)

	if err := p.persistOutcome(ctx, id, settled); err != nil {
		if errors.Is(err, domain.ErrOrderSettled) {
			p.logger.Warn("payment outcome discarded: order settled concurrently",
				slog.String("order_id", orderID))
			return
		}
		p.logger.Error("failed to persist payment outcome",
			slog.String("order_id", orderID),
			slog.Bool("settled", settled),
			slog.String("error", err.Error()),
		)
		return
	}

	p.logger.Info("payment settled",
		slog.String("order_id", orderID),
		slog.Bool("completed", settled),
		slog.Int("attempts", attempts),
	)

	p.publishSettlement(ctx, order, settled, attempts)
}

// attempt runs the sequential retry loop: one initial try plus up to
// maxRetries more, stopping at the first success.
func (p *Processor) attempt() (settled bool, attempts int) {
	for attempts = 1; attempts <= p.maxRetries+1; attempts++ {
		if !p.reject() {
			return true, attempts
		}
	}
	return false, p.maxRetries + 1
}

// persistOutcome re-fetches the order inside its own transaction and
// applies the one-shot terminal transition.
func (p *Processor) persistOutcome(ctx context.Context, id domain.OrderID, settled bool) error {
	return p.txScope.Execute(ctx, func(ctx context.Context) error {
		order, err := p.orders.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("refetching order: %w", err)
		}

		if settled {
			err = order.Complete()
		} else {
			err = order.Fail()
		}
		if err != nil {
			return err
		}

		if err := p.orders.Save(ctx, order); err != nil {
			return fmt.Errorf("saving order: %w", err)
		}
		return nil
	})
}

// publishSettlement emits the single settlement event for the final
// outcome. Resolution or delivery problems are logged, never retried:
// the order status is already durable.
func (p *Processor) publishSettlement(ctx context.Context, order *domain.Order, settled bool, attempts int) {
	var email string
	client, err := p.clients.Resolve(ctx, order.ClientID())
	if err != nil {
		p.logger.Error("settlement notification without recipient",
			slog.String("order_id", order.ID().String()),
			slog.String("client_id", order.ClientID()),
			slog.String("error", err.Error()),
		)
	} else {
		email = client.Email
	}

	event := &contracts.PaymentSettledEvent{
		BaseEvent:   events.NewBaseEvent(contracts.PaymentSettledEventType, order.ID().String()),
		OrderID:     order.ID().String(),
		ClientID:    order.ClientID(),
		ClientEmail: email,
		TotalAmount: order.Total().Amount(),
		Currency:    order.Total().Currency(),
		Settled:     settled,
		Attempts:    attempts,
	}

	if err := p.bus.Publish(ctx, event); err != nil {
		p.logger.Error("failed to publish settlement event",
			slog.String("order_id", order.ID().String()),
			slog.String("error", err.Error()),
		)
	}
}
