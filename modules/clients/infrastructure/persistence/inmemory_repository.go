// Package persistence implements repository interfaces using specific storage backends.
// This is the outermost layer - it implements ports defined in the domain layer.
package persistence

import (
	"context"
	"sync"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

// InMemoryRepository implements ClientRepository using in-memory storage.
// Writes performed inside a memdb transaction are buffered and become
// visible only after the transaction commits.
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client
	order   []string // insertion order for deterministic listing
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*domain.Client),
	}
}

// Compile-time interface check.
var _ domain.ClientRepository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, client *domain.Client) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := client.ID().String()
		if _, exists := r.clients[key]; !exists {
			r.order = append(r.order, key)
		}
		r.clients[key] = client
	}

	if tx, ok := memdb.TxFromContext(ctx); ok {
		tx.Buffer(write)
		return nil
	}
	write()
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[id.String()]
	if !exists {
		return nil, domain.ErrClientNotFound
	}
	return client, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Client, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	if offset >= total {
		return []*domain.Client{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	result := make([]*domain.Client, 0, end-offset)
	for _, key := range r.order[offset:end] {
		result = append(result, r.clients[key])
	}
	return result, total, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id domain.ClientID) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := id.String()
		delete(r.clients, key)
		for i, k := range r.order {
			if k == key {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}

	if tx, ok := memdb.TxFromContext(ctx); ok {
		tx.Buffer(write)
		return nil
	}
	write()
	return nil
}

func (r *InMemoryRepository) EmailInUse(ctx context.Context, email domain.Email, excluding domain.ClientID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.clients {
		if client.ID() == excluding {
			continue
		}
		if client.Email().Equals(email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) PhoneInUse(ctx context.Context, phone domain.Phone, excluding domain.ClientID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.clients {
		if client.ID() == excluding {
			continue
		}
		if client.Phone().Equals(phone) {
			return true, nil
		}
	}
	return false, nil
}
