// Package notifications emails clients about payment outcomes.
package notifications

import (
	"fmt"
	"log/slog"

	"github.com/rai/commerce-monolith-go/modules/notifications/application/eventhandlers"
	"github.com/rai/commerce-monolith-go/modules/notifications/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
)

// Module is the public API for the notifications bounded context.
// The module has no HTTP surface; it only consumes events.
type Module interface{}

// Config holds the module configuration.
type Config struct {
	Mailer     domain.Mailer
	Subscriber events.Subscriber
	Logger     *slog.Logger
}

type module struct{}

// New wires the notifications module: it subscribes the settlement
// handler to the event bus.
func New(cfg Config) (Module, error) {
	handler := eventhandlers.NewPaymentSettledHandler(cfg.Mailer, cfg.Logger)

	if err := cfg.Subscriber.Subscribe(contracts.PaymentSettledEventType, handler); err != nil {
		return nil, fmt.Errorf("subscribing to settlement events: %w", err)
	}

	return &module{}, nil
}
