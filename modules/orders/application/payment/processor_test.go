package payment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/orders/application/payment"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/orders/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/shared/chance"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// --- Mocks ---

type mockClientDirectory struct {
	resolveFn func(ctx context.Context, clientID string) (domain.ClientInfo, error)
}

func (m *mockClientDirectory) Resolve(ctx context.Context, clientID string) (domain.ClientInfo, error) {
	return m.resolveFn(ctx, clientID)
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	m.published = append(m.published, evts...)
	return nil
}

// countingRejector wraps a Rejector and counts draws.
func countingRejector(inner chance.Rejector, count *int) chance.Rejector {
	return func() bool {
		*count++
		return inner()
	}
}

// --- Fixture ---

type processorFixture struct {
	processor *payment.Processor
	orders    *persistence.InMemoryRepository
	bus       *mockPublisher
	draws     int
}

func newProcessorFixture(t *testing.T, reject chance.Rejector, maxRetries int) *processorFixture {
	t.Helper()

	f := &processorFixture{
		orders: persistence.NewInMemoryRepository(),
		bus:    &mockPublisher{},
	}

	clients := &mockClientDirectory{
		resolveFn: func(ctx context.Context, clientID string) (domain.ClientInfo, error) {
			return domain.ClientInfo{ID: clientID, Email: "john@example.com"}, nil
		},
	}

	f.processor = payment.NewProcessor(
		f.orders,
		clients,
		memdb.NewTransactionScope(),
		countingRejector(reject, &f.draws),
		maxRetries,
		f.bus,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func placeTestOrder(t *testing.T, orders *persistence.InMemoryRepository) *domain.Order {
	t.Helper()

	order, err := domain.NewOrder("client-1", []domain.OrderLine{
		{ProductID: "p1", SKU: "SKU-1", Name: "Widget", Quantity: 2, UnitPrice: types.MustNewMoney(1000, "USD")},
	}, "1 Main St", "token-1")
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	order.PopDomainEvents()

	if err := orders.Save(context.Background(), order); err != nil {
		t.Fatalf("failed to save order: %v", err)
	}
	return order
}

// --- Tests ---

func TestProcessor_Process_FirstAttemptSucceeds(t *testing.T) {
	f := newProcessorFixture(t, chance.Never(), 2)
	order := placeTestOrder(t, f.orders)

	f.processor.Process(context.Background(), order.ID().String())

	stored, err := f.orders.FindByID(context.Background(), order.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status() != domain.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", stored.Status())
	}
	if f.draws != 1 {
		t.Errorf("expected 1 attempt, got %d", f.draws)
	}

	if len(f.bus.published) != 1 {
		t.Fatalf("expected exactly one settlement event, got %d", len(f.bus.published))
	}
	settled, ok := f.bus.published[0].(*contracts.PaymentSettledEvent)
	if !ok {
		t.Fatalf("expected PaymentSettledEvent, got %T", f.bus.published[0])
	}
	if !settled.Settled {
		t.Error("expected Settled true")
	}
	if settled.Attempts != 1 {
		t.Errorf("expected 1 attempt in event, got %d", settled.Attempts)
	}
	if settled.ClientEmail != "john@example.com" {
		t.Errorf("expected resolved client email, got %q", settled.ClientEmail)
	}
	if settled.TotalAmount != 2000 {
		t.Errorf("expected event total 2000, got %d", settled.TotalAmount)
	}
}

func TestProcessor_Process_RetriesExhausted(t *testing.T) {
	f := newProcessorFixture(t, chance.Always(), 2)
	order := placeTestOrder(t, f.orders)

	f.processor.Process(context.Background(), order.ID().String())

	stored, _ := f.orders.FindByID(context.Background(), order.ID())
	if stored.Status() != domain.StatusFailed {
		t.Errorf("expected FAILED, got %s", stored.Status())
	}
	// One initial attempt plus two retries.
	if f.draws != 3 {
		t.Errorf("expected 3 attempts, got %d", f.draws)
	}

	if len(f.bus.published) != 1 {
		t.Fatalf("expected exactly one settlement event, got %d", len(f.bus.published))
	}
	settled := f.bus.published[0].(*contracts.PaymentSettledEvent)
	if settled.Settled {
		t.Error("expected Settled false")
	}
	if settled.Attempts != 3 {
		t.Errorf("expected 3 attempts in event, got %d", settled.Attempts)
	}
}

func TestProcessor_Process_SucceedsMidRetry(t *testing.T) {
	// Declines twice, then accepts: settles on the third draw.
	declines := 2
	reject := func() bool {
		if declines > 0 {
			declines--
			return true
		}
		return false
	}

	f := newProcessorFixture(t, reject, 5)
	order := placeTestOrder(t, f.orders)

	f.processor.Process(context.Background(), order.ID().String())

	stored, _ := f.orders.FindByID(context.Background(), order.ID())
	if stored.Status() != domain.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", stored.Status())
	}
	if f.draws != 3 {
		t.Errorf("expected 3 attempts, got %d", f.draws)
	}
}

func TestProcessor_Process_TerminalOrderSkipped(t *testing.T) {
	f := newProcessorFixture(t, chance.Never(), 2)
	order := placeTestOrder(t, f.orders)
	if err := order.Complete(); err != nil {
		t.Fatalf("failed to complete order: %v", err)
	}
	f.orders.Save(context.Background(), order)

	f.processor.Process(context.Background(), order.ID().String())

	if f.draws != 0 {
		t.Errorf("expected no payment attempts on a settled order, got %d", f.draws)
	}
	if len(f.bus.published) != 0 {
		t.Errorf("expected no settlement event, got %d", len(f.bus.published))
	}
}

func TestProcessor_Process_UnknownOrderDropped(t *testing.T) {
	f := newProcessorFixture(t, chance.Never(), 2)

	f.processor.Process(context.Background(), domain.NewOrderID().String())

	if f.draws != 0 {
		t.Errorf("expected no payment attempts for a missing order, got %d", f.draws)
	}
	if len(f.bus.published) != 0 {
		t.Errorf("expected no settlement event, got %d", len(f.bus.published))
	}
}

func TestProcessor_Process_UnresolvedClientStillSettles(t *testing.T) {
	f := newProcessorFixture(t, chance.Never(), 2)
	order := placeTestOrder(t, f.orders)

	// Replace the directory with one that fails resolution.
	f.processor = payment.NewProcessor(
		f.orders,
		&mockClientDirectory{
			resolveFn: func(ctx context.Context, clientID string) (domain.ClientInfo, error) {
				return domain.ClientInfo{}, domain.ErrClientNotFound
			},
		},
		memdb.NewTransactionScope(),
		chance.Never(),
		2,
		f.bus,
		nil,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	f.processor.Process(context.Background(), order.ID().String())

	stored, _ := f.orders.FindByID(context.Background(), order.ID())
	if stored.Status() != domain.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", stored.Status())
	}

	// The event still goes out, just without a recipient.
	if len(f.bus.published) != 1 {
		t.Fatalf("expected one settlement event, got %d", len(f.bus.published))
	}
	settled := f.bus.published[0].(*contracts.PaymentSettledEvent)
	if settled.ClientEmail != "" {
		t.Errorf("expected empty client email, got %q", settled.ClientEmail)
	}
}
