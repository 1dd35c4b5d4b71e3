package domain

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSKURequired      = errors.New("product SKU is required")
	ErrSKUTaken         = errors.New("product SKU is already in use")
	ErrNameRequired     = errors.New("product name is required")
	ErrPriceNegative    = errors.New("product price cannot be negative")
	ErrQuantityNegative = errors.New("product quantity cannot be negative")
)
