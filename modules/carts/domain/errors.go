package domain

import "errors"

var (
	ErrInvalidCartItemID = errors.New("invalid cart item ID format")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrClientRequired    = errors.New("client ID is required")
	ErrClientUnknown     = errors.New("client does not exist")
	ErrProductRequired   = errors.New("product ID is required")
	ErrProductUnknown    = errors.New("product does not exist")
	ErrQuantityInvalid   = errors.New("quantity must be positive")
)
