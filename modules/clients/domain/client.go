// Package domain contains the business entities and rules for clients.
// This is the innermost layer - it has no dependencies on outer layers.
package domain

import (
	"strings"
	"time"
)

// Client is the aggregate root for the client bounded context.
type Client struct {
	id        ClientID
	name      string
	email     Email
	phone     Phone
	address   string // optional; empty means no address on file
	createdAt time.Time
	updatedAt time.Time
}

// NewClient creates a new Client with validated inputs.
// Factory function enforces all invariants at creation time.
func NewClient(name string, email Email, phone Phone, address string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return &Client{
		id:        NewClientID(),
		name:      name,
		email:     email,
		phone:     phone,
		address:   strings.TrimSpace(address),
		createdAt: time.Now().UTC(),
		updatedAt: time.Now().UTC(),
	}, nil
}

// Reconstitute recreates a Client from persistence.
// Used by repositories to rebuild aggregates from stored data.
func Reconstitute(
	id ClientID,
	name string,
	email Email,
	phone Phone,
	address string,
	createdAt, updatedAt time.Time,
) *Client {
	return &Client{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		address:   address,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters - expose state without allowing direct mutation

func (c *Client) ID() ClientID         { return c.id }
func (c *Client) Name() string         { return c.name }
func (c *Client) Email() Email         { return c.email }
func (c *Client) Phone() Phone         { return c.phone }
func (c *Client) Address() string      { return c.address }
func (c *Client) HasAddress() bool     { return c.address != "" }
func (c *Client) CreatedAt() time.Time { return c.createdAt }
func (c *Client) UpdatedAt() time.Time { return c.updatedAt }

// UpdateDetails replaces the client's profile information.
func (c *Client) UpdateDetails(name string, email Email, phone Phone, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	c.name = name
	c.email = email
	c.phone = phone
	c.address = strings.TrimSpace(address)
	c.updatedAt = time.Now().UTC()
	return nil
}
