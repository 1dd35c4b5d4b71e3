// Package eventhandlers subscribes the notifications module to events
// from other modules.
package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rai/commerce-monolith-go/modules/notifications/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
)

// PaymentSettledHandler emails the client the final payment outcome.
// The settlement event arrives exactly once per order, so the client
// gets exactly one email per order.
type PaymentSettledHandler struct {
	mailer domain.Mailer
	logger *slog.Logger
}

func NewPaymentSettledHandler(mailer domain.Mailer, logger *slog.Logger) *PaymentSettledHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentSettledHandler{mailer: mailer, logger: logger}
}

// Compile-time interface check.
var _ events.Handler = (*PaymentSettledHandler)(nil)

func (h *PaymentSettledHandler) Handle(ctx context.Context, event events.Event) error {
	settled, ok := event.(*contracts.PaymentSettledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	if settled.ClientEmail == "" {
		h.logger.Warn("settlement email skipped: no recipient",
			slog.String("order_id", settled.OrderID))
		return nil
	}

	subject := "Payment confirmed"
	body := paymentSucceededBody(settled)
	if !settled.Settled {
		subject = "Payment failed"
		body = paymentFailedBody(settled)
	}

	if err := h.mailer.Send(ctx, settled.ClientEmail, subject, body); err != nil {
		// Mail failures never bubble into payment processing.
		h.logger.Error("failed to send settlement email",
			slog.String("order_id", settled.OrderID),
			slog.String("to", settled.ClientEmail),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func paymentSucceededBody(e *contracts.PaymentSettledEvent) string {
	return fmt.Sprintf(`<html>
    <body>
        <h2>Payment Confirmed! 🎉</h2>
        <p>Thank you for your purchase!</p>
        <p><strong>Order ID:</strong> %s</p>
        <p><strong>Amount Paid:</strong> $%.2f</p>
        <p>Your order is being processed and will be shipped soon.</p>
        <p>Need help? Reply to this email or contact support.</p>
    </body>
</html>`, e.OrderID, float64(e.TotalAmount)/100)
}

func paymentFailedBody(e *contracts.PaymentSettledEvent) string {
	return fmt.Sprintf(`<html>
    <body>
        <h2>Payment Failed ❌</h2>
        <p>We couldn't process your payment for:</p>
        <p><strong>Order ID:</strong> %s</p>
        <p><strong>Amount:</strong> $%.2f</p>
        <p>Please check your payment method and try again.</p>
        <p>Contact support if the issue persists.</p>
    </body>
</html>`, e.OrderID, float64(e.TotalAmount)/100)
}
