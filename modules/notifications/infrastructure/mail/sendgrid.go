// Package mail provides Mailer implementations.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/rai/commerce-monolith-go/modules/notifications/domain"
)

// SendGridMailer sends HTML email through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey      string
	senderAddr  string
	senderAlias string
	logger      *slog.Logger
}

func NewSendGridMailer(apiKey, senderAddr, senderAlias string, logger *slog.Logger) *SendGridMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendGridMailer{
		apiKey:      apiKey,
		senderAddr:  senderAddr,
		senderAlias: senderAlias,
		logger:      logger,
	}
}

// Compile-time interface check.
var _ domain.Mailer = (*SendGridMailer)(nil)

func (m *SendGridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	from := sgmail.NewEmail(m.senderAlias, m.senderAddr)
	recipient := sgmail.NewEmail("", to)
	message := sgmail.NewSingleEmail(from, subject, recipient, "", htmlBody)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", response.StatusCode, response.Body)
	}

	m.logger.Info("email sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("status", response.StatusCode),
	)
	return nil
}

// LogMailer is the dev/test Mailer: it only logs what would be sent.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// Compile-time interface check.
var _ domain.Mailer = (*LogMailer)(nil)

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info("email suppressed (log mailer)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(htmlBody)),
	)
	return nil
}
