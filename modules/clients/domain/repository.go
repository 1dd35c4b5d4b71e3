package domain

import "context"

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id ClientID) (*Client, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Client, int, error)
	Delete(ctx context.Context, id ClientID) error

	// EmailInUse reports whether another client (excluding the given ID)
	// already registered the email. Pass a zero ClientID on create.
	EmailInUse(ctx context.Context, email Email, excluding ClientID) (bool, error)
	// PhoneInUse is the phone counterpart of EmailInUse.
	PhoneInUse(ctx context.Context, phone Phone, excluding ClientID) (bool, error)
}
