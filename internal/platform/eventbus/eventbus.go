package eventbus

import (
	"context"
	"log/slog"

	"github.com/rai/commerce-monolith-go/modules/shared/events"
)

// InMemoryEventBus delivers events synchronously to registered handlers.
// Unlike TransactionalPublisher it has no buffering: events are handled the
// moment they are published. Use it for events emitted OUTSIDE transactions
// (e.g. payment settlement), where handlers perform external side effects
// such as sending email.
type InMemoryEventBus struct {
	registry HandlerRegistry
	logger   *slog.Logger
}

func New(registry HandlerRegistry, logger *slog.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: registry,
		logger:   logger,
	}
}

// Publish implements events.Publisher.
// Handler failures are logged and do not stop delivery to other handlers,
// nor do they propagate to the publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, evts ...events.Event) error {
	for _, event := range evts {
		handlers := b.registry.HandlersFor(event.EventType())

		b.logger.Debug("publishing event",
			slog.String("event_type", event.EventType().String()),
			slog.String("event_id", event.EventID()),
			slog.Int("handler_count", len(handlers)))

		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				b.logger.Error("event handler failed",
					slog.String("event_type", event.EventType().String()),
					slog.String("event_id", event.EventID()),
					slog.Any("error", err))
				// Continue processing other handlers even if one fails
			}
		}
	}
	return nil
}

// Compile-time interface check.
var _ events.Publisher = (*InMemoryEventBus)(nil)
