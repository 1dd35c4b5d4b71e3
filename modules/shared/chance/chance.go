// Package chance provides probability-driven decision functions.
// Both the tokenization gate and the payment worker take their
// reject/accept decision as an injected function, so tests can force
// either path deterministically.
package chance

import "math/rand/v2"

// Rejector reports whether an operation should be rejected.
type Rejector func() bool

// NewRejector returns a Rejector that rejects with probability p.
// p <= 0 never rejects and p >= 1 always rejects, without consuming
// randomness.
func NewRejector(p float64) Rejector {
	switch {
	case p <= 0:
		return Never()
	case p >= 1:
		return Always()
	default:
		return func() bool { return rand.Float64() < p }
	}
}

// Never returns a Rejector that always accepts.
func Never() Rejector { return func() bool { return false } }

// Always returns a Rejector that always rejects.
func Always() Rejector { return func() bool { return true } }
