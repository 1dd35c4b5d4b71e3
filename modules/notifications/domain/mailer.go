// Package domain defines the notification module's ports.
package domain

import "context"

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
