package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidClientID indicates the client ID format is invalid.
var ErrInvalidClientID = errors.New("invalid client ID format")

// ClientID represents a unique identifier for a client.
// Using a distinct type prevents mixing up different ID types.
type ClientID struct {
	value string
}

func NewClientID() ClientID {
	return ClientID{value: uuid.New().String()}
}

func ParseClientID(s string) (ClientID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return ClientID{}, ErrInvalidClientID
	}
	return ClientID{value: s}, nil
}

func (id ClientID) String() string { return id.value }
func (id ClientID) IsZero() bool   { return id.value == "" }
