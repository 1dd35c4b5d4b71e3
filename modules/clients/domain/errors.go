package domain

import "errors"

// Domain errors - business rule violations.
// These errors are part of the domain language.
var (
	ErrClientNotFound = errors.New("client not found")
	ErrNameRequired   = errors.New("name must not be blank")
	ErrEmailRequired  = errors.New("email must not be blank")
	ErrEmailInvalid   = errors.New("email format is invalid")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrPhoneRequired  = errors.New("phone must not be blank")
	ErrPhoneInvalid   = errors.New("phone must be 7 to 15 digits")
	ErrPhoneTaken     = errors.New("phone is already registered")
)
