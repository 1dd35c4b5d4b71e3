package domain

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderSettled      = errors.New("order payment already settled")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrClientRequired    = errors.New("client ID is required")
	ErrClientNotFound    = errors.New("client not found")
	ErrCardTokenRequired = errors.New("card token is required")
	ErrCardNotFound      = errors.New("card details not found")
)
