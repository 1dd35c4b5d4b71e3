package domain

import (
	"regexp"
	"strings"
)

// Email is a value object representing a validated email address.
// Value objects are immutable and compared by value.
type Email struct {
	value string
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewEmail creates a validated Email value object.
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return Email{}, ErrEmailRequired
	}
	if !emailRegex.MatchString(value) {
		return Email{}, ErrEmailInvalid
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// Phone is a value object representing a validated phone number.
type Phone struct {
	value string
}

var phoneRegex = regexp.MustCompile(`^\+?\d{7,15}$`)

// NewPhone creates a validated Phone value object.
// Accepts an optional leading + followed by 7 to 15 digits.
func NewPhone(value string) (Phone, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Phone{}, ErrPhoneRequired
	}
	if !phoneRegex.MatchString(value) {
		return Phone{}, ErrPhoneInvalid
	}
	return Phone{value: value}, nil
}

func (p Phone) String() string { return p.value }
func (p Phone) IsZero() bool   { return p.value == "" }

func (p Phone) Equals(other Phone) bool {
	return p.value == other.value
}
