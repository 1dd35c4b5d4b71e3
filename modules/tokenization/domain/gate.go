// Package domain contains the card tokenization gate.
// Tokenization is a stand-in for a real vault: a deterministic keyed hash
// of the card fields, preceded by a probabilistic risk rejection.
package domain

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/rai/commerce-monolith-go/modules/shared/chance"
)

// Card holds the raw card fields to tokenize. Input validation
// (well-formed number, MM/YY expiration, 3-4 digit CVV, non-blank holder)
// is the caller's responsibility.
type Card struct {
	Number     string
	Expiration string
	CVV        string
	Holder     string
}

// Gate converts raw card fields into an opaque token or rejects the request.
type Gate interface {
	Tokenize(ctx context.Context, card Card) (string, error)
}

// HMACGate implements Gate with an HMAC-SHA256 keyed digest.
// Pure: no side effects beyond the injected random draw.
type HMACGate struct {
	secret []byte
	reject chance.Rejector
}

// NewHMACGate creates a gate with the given shared secret and risk decision.
func NewHMACGate(secret string, reject chance.Rejector) *HMACGate {
	return &HMACGate{
		secret: []byte(secret),
		reject: reject,
	}
}

// Tokenize returns the token for the card, or ErrCardRejected when the
// risk draw fails. The rejection happens BEFORE any token is computed so
// callers can rely on a rejected request having no derivable token.
// The same card fields and secret always produce the same token.
func (g *HMACGate) Tokenize(ctx context.Context, card Card) (string, error) {
	if g.reject() {
		return "", ErrCardRejected
	}

	if len(g.secret) == 0 {
		// Misconfiguration, not a business rejection.
		return "", ErrTokenGeneration
	}

	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(card.Number + ":" + card.CVV + ":" + card.Expiration + ":" + card.Holder))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Compile-time interface check.
var _ Gate = (*HMACGate)(nil)
