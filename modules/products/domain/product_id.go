package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidProductID indicates the product ID format is invalid.
var ErrInvalidProductID = errors.New("invalid product ID format")

// ProductID represents a unique identifier for a product.
type ProductID struct {
	value string
}

func NewProductID() ProductID {
	return ProductID{value: uuid.New().String()}
}

func ParseProductID(s string) (ProductID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return ProductID{}, ErrInvalidProductID
	}
	return ProductID{value: s}, nil
}

func (id ProductID) String() string { return id.value }
func (id ProductID) IsZero() bool   { return id.value == "" }
