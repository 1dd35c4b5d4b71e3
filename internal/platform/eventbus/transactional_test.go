package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rai/commerce-monolith-go/internal/platform/eventbus"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
)

const testEventType events.EventType = "test.SomethingHappened"

type testEvent struct {
	events.BaseEvent
	Payload string
}

func newTestEvent(payload string) *testEvent {
	return &testEvent{
		BaseEvent: events.NewBaseEvent(testEventType, "aggregate-1"),
		Payload:   payload,
	}
}

func newRegistry(t *testing.T) *eventbus.EventHandlerRegistry {
	t.Helper()
	return eventbus.NewEventHandlerRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTransactionalPublisher_BuffersUntilFlush(t *testing.T) {
	registry := newRegistry(t)
	var handled []events.Event
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		handled = append(handled, event)
		return nil
	}))

	publisher := eventbus.NewTransactionalPublisher(registry, 10)

	if err := publisher.Publish(context.Background(), newTestEvent("a"), newTestEvent("b")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handled) != 0 {
		t.Fatalf("expected no handling before Flush, got %d events", len(handled))
	}
	if publisher.PendingCount() != 2 {
		t.Errorf("expected 2 pending events, got %d", publisher.PendingCount())
	}

	if err := publisher.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handled) != 2 {
		t.Errorf("expected 2 handled events, got %d", len(handled))
	}
	if publisher.PendingCount() != 0 {
		t.Errorf("expected no pending events after Flush, got %d", publisher.PendingCount())
	}
}

func TestTransactionalPublisher_Flush_HandlerError(t *testing.T) {
	registry := newRegistry(t)
	errHandler := errors.New("handler failed")
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		return errHandler
	}))

	publisher := eventbus.NewTransactionalPublisher(registry, 10)
	publisher.Publish(context.Background(), newTestEvent("a"))

	err := publisher.Flush(context.Background())
	if !errors.Is(err, errHandler) {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
}

func TestTransactionalPublisher_Flush_NestedPublish(t *testing.T) {
	const followupType events.EventType = "test.Followup"

	registry := newRegistry(t)
	publisher := eventbus.NewTransactionalPublisher(registry, 10)

	followupHandled := false
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		return publisher.Publish(ctx, &testEvent{BaseEvent: events.NewBaseEvent(followupType, "aggregate-1")})
	}))
	registry.Subscribe(followupType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		followupHandled = true
		return nil
	}))

	publisher.Publish(context.Background(), newTestEvent("a"))

	if err := publisher.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !followupHandled {
		t.Error("expected the event published by a handler to be processed in the same flush")
	}
}

func TestTransactionalPublisher_Flush_DepthExceeded(t *testing.T) {
	registry := newRegistry(t)
	publisher := eventbus.NewTransactionalPublisher(registry, 3)

	// Handler republishes its own event type forever.
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		return publisher.Publish(ctx, newTestEvent("again"))
	}))

	publisher.Publish(context.Background(), newTestEvent("a"))

	err := publisher.Flush(context.Background())
	if !errors.Is(err, eventbus.ErrEventProcessingDepthExceeded) {
		t.Fatalf("expected ErrEventProcessingDepthExceeded, got %v", err)
	}
}

func TestInMemoryEventBus_DeliversImmediately(t *testing.T) {
	registry := newRegistry(t)
	handled := 0
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		handled++
		return nil
	}))

	bus := eventbus.New(registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := bus.Publish(context.Background(), newTestEvent("a")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled != 1 {
		t.Errorf("expected 1 handled event, got %d", handled)
	}
}

func TestInMemoryEventBus_HandlerErrorDoesNotPropagate(t *testing.T) {
	registry := newRegistry(t)
	secondCalled := false
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		return errors.New("first handler failed")
	}))
	registry.Subscribe(testEventType, eventbus.HandlerFunc(func(ctx context.Context, event events.Event) error {
		secondCalled = true
		return nil
	}))

	bus := eventbus.New(registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := bus.Publish(context.Background(), newTestEvent("a")); err != nil {
		t.Fatalf("expected handler failure to be swallowed, got %v", err)
	}
	if !secondCalled {
		t.Error("expected delivery to continue past a failing handler")
	}
}
