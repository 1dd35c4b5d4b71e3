package domain

import "errors"

var (
	// ErrCardRejected signals the risk check declined the card.
	// Client-correctable: retrying with the same inputs may succeed.
	ErrCardRejected = errors.New("card tokenization rejected")

	// ErrTokenGeneration signals a fatal configuration problem in token
	// computation. Never confuse this with a business rejection.
	ErrTokenGeneration = errors.New("failed to generate card token")
)
