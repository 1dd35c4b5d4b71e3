package memdb_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
)

func TestTransactionScope_Execute_Commit(t *testing.T) {
	scope := memdb.NewTransactionScope()
	applied := 0

	err := scope.Execute(context.Background(), func(ctx context.Context) error {
		tx, ok := memdb.TxFromContext(ctx)
		if !ok {
			t.Fatal("expected a transaction in context")
		}
		tx.Buffer(func() { applied++ })
		tx.Buffer(func() { applied++ })

		// Buffered writes are invisible until commit.
		if applied != 0 {
			t.Errorf("expected no mutations applied inside the transaction, got %d", applied)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 mutations applied after commit, got %d", applied)
	}
}

func TestTransactionScope_Execute_Rollback(t *testing.T) {
	scope := memdb.NewTransactionScope()
	applied := 0
	errBoom := errors.New("boom")

	err := scope.Execute(context.Background(), func(ctx context.Context) error {
		tx, _ := memdb.TxFromContext(ctx)
		tx.Buffer(func() { applied++ })
		return errBoom
	})

	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if applied != 0 {
		t.Errorf("expected no mutations applied after rollback, got %d", applied)
	}
}

func TestTxFromContext_NoTransaction(t *testing.T) {
	if _, ok := memdb.TxFromContext(context.Background()); ok {
		t.Error("expected no transaction in a bare context")
	}
}

func TestTransactionScope_Execute_Serializes(t *testing.T) {
	// Read-modify-write from many goroutines must not lose updates:
	// the scope serializes whole transactions, not single writes.
	scope := memdb.NewTransactionScope()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = scope.Execute(context.Background(), func(ctx context.Context) error {
				tx, _ := memdb.TxFromContext(ctx)
				current := counter
				tx.Buffer(func() { counter = current + 1 })
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected counter 50, got %d", counter)
	}
}
