package domain

import (
	"context"
	"time"
)

// CreditCardDetails is the write-once envelope of raw card fields kept
// alongside an order, keyed by the token the gate produced. The fields
// are encrypted by the repository before they touch storage; the domain
// object holds plaintext only in memory.
type CreditCardDetails struct {
	token      string
	number     string
	expiration string
	cvv        string
	holder     string
	createdAt  time.Time
}

func NewCreditCardDetails(token, number, expiration, cvv, holder string) (*CreditCardDetails, error) {
	if token == "" {
		return nil, ErrCardTokenRequired
	}
	return &CreditCardDetails{
		token:      token,
		number:     number,
		expiration: expiration,
		cvv:        cvv,
		holder:     holder,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstituteCreditCardDetails recreates card details from persistence
// after the repository has decrypted the fields.
func ReconstituteCreditCardDetails(token, number, expiration, cvv, holder string, createdAt time.Time) *CreditCardDetails {
	return &CreditCardDetails{
		token:      token,
		number:     number,
		expiration: expiration,
		cvv:        cvv,
		holder:     holder,
		createdAt:  createdAt,
	}
}

func (c *CreditCardDetails) Token() string        { return c.token }
func (c *CreditCardDetails) Number() string       { return c.number }
func (c *CreditCardDetails) Expiration() string   { return c.expiration }
func (c *CreditCardDetails) CVV() string          { return c.cvv }
func (c *CreditCardDetails) Holder() string       { return c.holder }
func (c *CreditCardDetails) CreatedAt() time.Time { return c.createdAt }

// CardRepository stores tokenized card details. Write-once: saves
// happen inside the order-placement transaction, so a rolled-back
// placement leaves no card row behind.
type CardRepository interface {
	Save(ctx context.Context, card *CreditCardDetails) error
	FindByToken(ctx context.Context, token string) (*CreditCardDetails, error)
}
