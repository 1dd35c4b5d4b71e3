package persistence

import (
	"context"
	"sync"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// InMemorySearchLog implements SearchLogRepository in memory.
// Search records are append-only audit data, so writes go straight to
// the slice with no transaction involvement.
type InMemorySearchLog struct {
	mu      sync.RWMutex
	records []*domain.SearchRecord
}

func NewInMemorySearchLog() *InMemorySearchLog {
	return &InMemorySearchLog{}
}

// Compile-time interface check.
var _ domain.SearchLogRepository = (*InMemorySearchLog)(nil)

func (r *InMemorySearchLog) Save(ctx context.Context, record *domain.SearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *InMemorySearchLog) FindRecent(ctx context.Context, limit int) ([]*domain.SearchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > len(r.records) {
		limit = len(r.records)
	}

	// Newest first.
	result := make([]*domain.SearchRecord, 0, limit)
	for i := len(r.records) - 1; i >= len(r.records)-limit; i-- {
		result = append(result, r.records[i])
	}
	return result, nil
}
