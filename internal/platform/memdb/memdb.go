// Package memdb provides the in-memory transactional store behind the
// "memory" storage driver. It mirrors the Spanner write model: repositories
// buffer mutations while a transaction is open and the scope applies them
// only on commit, so a failed transaction leaves no partial state behind
// (no orphaned card rows, no half-fulfilled carts).
package memdb

import (
	"context"
	"sync"

	sharedtx "github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// Mutation is a deferred write against an in-memory repository.
type Mutation func()

// Tx collects mutations buffered during a transaction.
// Reads performed inside the transaction observe committed state only,
// the same visibility a Spanner read-write transaction gives before commit.
type Tx struct {
	mutations []Mutation
}

// Buffer queues mutations for application at commit time.
func (t *Tx) Buffer(mutations ...Mutation) {
	t.mutations = append(t.mutations, mutations...)
}

func (t *Tx) apply() {
	for _, m := range t.mutations {
		m()
	}
	t.mutations = nil
}

// txKey is the context key for storing the in-memory transaction.
type txKey struct{}

// WithTx embeds an in-memory transaction in the context.
func WithTx(ctx context.Context, tx *Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext extracts the in-memory transaction from context.
// Returns (nil, false) if no transaction is present.
func TxFromContext(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

// TransactionScope serializes all in-memory transactions behind one mutex.
// Coarse but correct: two concurrent order placements for the same client
// can never interleave between the cart read and the fulfillment write, so
// at most one of them consumes the cart.
type TransactionScope struct {
	mu sync.Mutex
}

func NewTransactionScope() *TransactionScope {
	return &TransactionScope{}
}

// Execute runs fn with a fresh transaction in ctx. Buffered mutations are
// applied only if fn returns nil; on error they are discarded.
func (s *TransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{}
	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}
	tx.apply()
	return nil
}

// Compile-time interface check.
var _ sharedtx.Scope = (*TransactionScope)(nil)
