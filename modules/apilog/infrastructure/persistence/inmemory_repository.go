// Package persistence implements the apilog repository.
package persistence

import (
	"context"
	"sync"

	"github.com/rai/commerce-monolith-go/modules/apilog/domain"
)

// maxInMemoryRecords bounds the in-memory audit trail so a long-lived
// dev server does not grow without limit.
const maxInMemoryRecords = 10000

// InMemoryRepository implements Repository in memory. Audit rows are
// append-only and written off-transaction, so no memdb involvement.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []*domain.Record
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Compile-time interface check.
var _ domain.Repository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, record *domain.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, record)
	if len(r.records) > maxInMemoryRecords {
		r.records = r.records[len(r.records)-maxInMemoryRecords:]
	}
	return nil
}

func (r *InMemoryRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > len(r.records) {
		limit = len(r.records)
	}

	result := make([]*domain.Record, 0, limit)
	for i := len(r.records) - 1; i >= len(r.records)-limit; i-- {
		result = append(result, r.records[i])
	}
	return result, nil
}
