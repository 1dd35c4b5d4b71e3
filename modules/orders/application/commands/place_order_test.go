package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rai/commerce-monolith-go/internal/platform/eventbus"
	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/orders/application/commands"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/orders/infrastructure/crypto"
	"github.com/rai/commerce-monolith-go/modules/orders/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/shared/chance"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
	tokendomain "github.com/rai/commerce-monolith-go/modules/tokenization/domain"
)

// --- Mocks ---

type mockClientDirectory struct {
	resolveFn func(ctx context.Context, clientID string) (domain.ClientInfo, error)
}

func (m *mockClientDirectory) Resolve(ctx context.Context, clientID string) (domain.ClientInfo, error) {
	return m.resolveFn(ctx, clientID)
}

type mockCartSource struct {
	openLinesFn  func(ctx context.Context, clientID string) ([]domain.CartLine, error)
	fulfillAllFn func(ctx context.Context, clientID string) error
}

func (m *mockCartSource) OpenLines(ctx context.Context, clientID string) ([]domain.CartLine, error) {
	return m.openLinesFn(ctx, clientID)
}

func (m *mockCartSource) FulfillAll(ctx context.Context, clientID string) error {
	return m.fulfillAllFn(ctx, clientID)
}

type mockPaymentQueue struct {
	enqueueFn func(orderID string) error
}

func (m *mockPaymentQueue) Enqueue(orderID string) error {
	return m.enqueueFn(orderID)
}

// --- Fixture ---

type placeOrderFixture struct {
	handler    *commands.PlaceOrderHandler
	orders     *persistence.InMemoryRepository
	cards      *persistence.InMemoryCardRepository
	gate       tokendomain.Gate
	placed     []events.Event
	fulfilled  []string
	enqueued   []string
	enqueueErr error
}

func testCartLines(t *testing.T) []domain.CartLine {
	t.Helper()
	return []domain.CartLine{
		{ProductID: "p1", SKU: "SKU-1", Name: "Widget", Quantity: 2, UnitPrice: types.MustNewMoney(1000, "USD")},
		{ProductID: "p2", SKU: "SKU-2", Name: "Gadget", Quantity: 1, UnitPrice: types.MustNewMoney(2550, "USD")},
	}
}

func testCommand() commands.PlaceOrderCommand {
	return commands.PlaceOrderCommand{
		ClientID:        "client-1",
		DeliveryAddress: "1 Main St",
		CardNumber:      "4111111111111111",
		CardExpiration:  "12/30",
		CardCVV:         "123",
		CardHolder:      "JOHN DOE",
	}
}

func newPlaceOrderFixture(t *testing.T, reject chance.Rejector, lines []domain.CartLine) *placeOrderFixture {
	t.Helper()

	encryptor, err := crypto.NewEncryptor([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}

	f := &placeOrderFixture{
		orders: persistence.NewInMemoryRepository(),
		cards:  persistence.NewInMemoryCardRepository(encryptor),
		gate:   tokendomain.NewHMACGate("test-secret", reject),
	}

	registry := eventbus.NewEventHandlerRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	registry.Subscribe(contracts.OrderPlacedEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		f.placed = append(f.placed, event)
		return nil
	}))

	clients := &mockClientDirectory{
		resolveFn: func(ctx context.Context, clientID string) (domain.ClientInfo, error) {
			if clientID != "client-1" {
				return domain.ClientInfo{}, domain.ErrClientNotFound
			}
			return domain.ClientInfo{
				ID:      "client-1",
				Name:    "John Doe",
				Email:   "john@example.com",
				Address: "9 Home Ave",
			}, nil
		},
	}

	carts := &mockCartSource{
		openLinesFn: func(ctx context.Context, clientID string) ([]domain.CartLine, error) {
			return lines, nil
		},
		fulfillAllFn: func(ctx context.Context, clientID string) error {
			f.fulfilled = append(f.fulfilled, clientID)
			return nil
		},
	}

	payments := &mockPaymentQueue{
		enqueueFn: func(orderID string) error {
			f.enqueued = append(f.enqueued, orderID)
			return f.enqueueErr
		},
	}

	f.handler = commands.NewPlaceOrderHandler(
		f.gate,
		f.orders,
		f.cards,
		clients,
		carts,
		memdb.NewTransactionScope(),
		registry,
		payments,
	)
	return f
}

// --- Tests ---

func TestPlaceOrderHandler_Handle_Success(t *testing.T) {
	f := newPlaceOrderFixture(t, chance.Never(), testCartLines(t))

	orderID, err := f.handler.Handle(context.Background(), testCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID == "" {
		t.Fatal("expected an order id")
	}

	id, err := domain.ParseOrderID(orderID)
	if err != nil {
		t.Fatalf("expected a parseable order id, got %q", orderID)
	}
	order, err := f.orders.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("expected order to be persisted: %v", err)
	}
	if order.Status() != domain.StatusProcessing {
		t.Errorf("expected status PROCESSING, got %s", order.Status())
	}
	if order.Total().Amount() != 4550 {
		t.Errorf("expected total 4550, got %d", order.Total().Amount())
	}
	if order.DeliveryAddress() != "1 Main St" {
		t.Errorf("expected delivery address from the command, got %q", order.DeliveryAddress())
	}

	// Card details are stored under the deterministic token.
	token, err := f.gate.Tokenize(context.Background(), tokendomain.Card{
		Number:     "4111111111111111",
		Expiration: "12/30",
		CVV:        "123",
		Holder:     "JOHN DOE",
	})
	if err != nil {
		t.Fatalf("unexpected tokenize error: %v", err)
	}
	card, err := f.cards.FindByToken(context.Background(), token)
	if err != nil {
		t.Fatalf("expected card details to be persisted: %v", err)
	}
	if card.Number() != "4111111111111111" {
		t.Errorf("expected card number roundtrip, got %q", card.Number())
	}

	if len(f.fulfilled) != 1 || f.fulfilled[0] != "client-1" {
		t.Errorf("expected cart fulfilled for client-1, got %v", f.fulfilled)
	}
	if len(f.enqueued) != 1 || f.enqueued[0] != orderID {
		t.Errorf("expected payment enqueued for %s, got %v", orderID, f.enqueued)
	}

	if len(f.placed) != 1 {
		t.Fatalf("expected 1 OrderPlacedEvent, got %d", len(f.placed))
	}
	placed, ok := f.placed[0].(*contracts.OrderPlacedEvent)
	if !ok {
		t.Fatalf("expected OrderPlacedEvent, got %T", f.placed[0])
	}
	if placed.OrderID != orderID {
		t.Errorf("expected event order id %s, got %s", orderID, placed.OrderID)
	}
}

func TestPlaceOrderHandler_Handle_AddressFallback(t *testing.T) {
	f := newPlaceOrderFixture(t, chance.Never(), testCartLines(t))

	cmd := testCommand()
	cmd.DeliveryAddress = ""

	orderID, err := f.handler.Handle(context.Background(), cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, _ := domain.ParseOrderID(orderID)
	order, err := f.orders.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("expected order to be persisted: %v", err)
	}
	if order.DeliveryAddress() != "9 Home Ave" {
		t.Errorf("expected the client's address as fallback, got %q", order.DeliveryAddress())
	}
}

func TestPlaceOrderHandler_Handle_CardRejected(t *testing.T) {
	f := newPlaceOrderFixture(t, chance.Always(), testCartLines(t))

	_, err := f.handler.Handle(context.Background(), testCommand())

	if !errors.Is(err, tokendomain.ErrCardRejected) {
		t.Fatalf("expected ErrCardRejected, got %v", err)
	}
	if len(f.enqueued) != 0 {
		t.Error("expected no payment enqueued after rejection")
	}
	if len(f.fulfilled) != 0 {
		t.Error("expected the cart untouched after rejection")
	}
	if orders, _ := f.orders.FindByClient(context.Background(), "client-1"); len(orders) != 0 {
		t.Errorf("expected no orders persisted, got %d", len(orders))
	}
}

func TestPlaceOrderHandler_Handle_EmptyCart(t *testing.T) {
	f := newPlaceOrderFixture(t, chance.Never(), nil)

	_, err := f.handler.Handle(context.Background(), testCommand())

	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	// The card was saved inside the transaction; the rollback must
	// discard it along with everything else.
	token, _ := f.gate.Tokenize(context.Background(), tokendomain.Card{
		Number:     "4111111111111111",
		Expiration: "12/30",
		CVV:        "123",
		Holder:     "JOHN DOE",
	})
	if _, err := f.cards.FindByToken(context.Background(), token); !errors.Is(err, domain.ErrCardNotFound) {
		t.Errorf("expected no card row after rollback, got %v", err)
	}
	if len(f.enqueued) != 0 {
		t.Error("expected no payment enqueued for an empty cart")
	}
	if len(f.placed) != 0 {
		t.Error("expected no OrderPlacedEvent for an empty cart")
	}
}

func TestPlaceOrderHandler_Handle_ClientNotFound(t *testing.T) {
	f := newPlaceOrderFixture(t, chance.Never(), testCartLines(t))

	cmd := testCommand()
	cmd.ClientID = "nobody"

	_, err := f.handler.Handle(context.Background(), cmd)

	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(f.enqueued) != 0 {
		t.Error("expected no payment enqueued for an unknown client")
	}
}

func TestPlaceOrderHandler_Handle_EnqueueError(t *testing.T) {
	f := newPlaceOrderFixture(t, chance.Never(), testCartLines(t))
	f.enqueueErr = errors.New("queue full")

	_, err := f.handler.Handle(context.Background(), testCommand())

	if err == nil || !errors.Is(err, f.enqueueErr) {
		t.Fatalf("expected enqueue error to surface, got %v", err)
	}

	// The order itself committed before the enqueue failed.
	orders, _ := f.orders.FindByClient(context.Background(), "client-1")
	if len(orders) != 1 {
		t.Errorf("expected the committed order to remain, got %d", len(orders))
	}
}

func TestPlaceOrderHandler_Handle_ConcurrentPlacements(t *testing.T) {
	// Two placements for the same client race for the cart. The
	// serialized transaction scope guarantees the loser observes the
	// fulfilled cart and fails with ErrEmptyCart.
	encryptor, err := crypto.NewEncryptor([]byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}

	open := testCartLines(t)
	fulfilled := false

	carts := &mockCartSource{
		openLinesFn: func(ctx context.Context, clientID string) ([]domain.CartLine, error) {
			if fulfilled {
				return nil, nil
			}
			return open, nil
		},
		fulfillAllFn: func(ctx context.Context, clientID string) error {
			fulfilled = true
			return nil
		},
	}
	clients := &mockClientDirectory{
		resolveFn: func(ctx context.Context, clientID string) (domain.ClientInfo, error) {
			return domain.ClientInfo{ID: clientID, Email: "john@example.com", Address: "9 Home Ave"}, nil
		},
	}

	var enqueued []string
	payments := &mockPaymentQueue{
		enqueueFn: func(orderID string) error {
			enqueued = append(enqueued, orderID)
			return nil
		},
	}

	registry := eventbus.NewEventHandlerRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler := commands.NewPlaceOrderHandler(
		tokendomain.NewHMACGate("test-secret", chance.Never()),
		persistence.NewInMemoryRepository(),
		persistence.NewInMemoryCardRepository(encryptor),
		clients,
		carts,
		memdb.NewTransactionScope(),
		registry,
		payments,
	)

	_, firstErr := handler.Handle(context.Background(), testCommand())
	_, secondErr := handler.Handle(context.Background(), testCommand())

	if firstErr != nil {
		t.Fatalf("expected the first placement to succeed, got %v", firstErr)
	}
	if !errors.Is(secondErr, domain.ErrEmptyCart) {
		t.Fatalf("expected the second placement to fail with ErrEmptyCart, got %v", secondErr)
	}
	if len(enqueued) != 1 {
		t.Errorf("expected exactly one payment enqueued, got %d", len(enqueued))
	}
}
