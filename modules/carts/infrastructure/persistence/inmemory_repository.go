// Package persistence implements repository interfaces using specific storage backends.
package persistence

import (
	"context"
	"sync"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/carts/domain"
)

// InMemoryRepository implements CartRepository using in-memory storage.
// Writes performed inside a memdb transaction are buffered and applied
// on commit, so a rolled-back order placement leaves the cart intact.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.CartItem
	order []string // insertion order per cart listing
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string]*domain.CartItem),
	}
}

// Compile-time interface check.
var _ domain.CartRepository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, item *domain.CartItem) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := item.ID().String()
		if _, exists := r.items[key]; !exists {
			r.order = append(r.order, key)
		}
		r.items[key] = item
	}

	if tx, ok := memdb.TxFromContext(ctx); ok {
		tx.Buffer(write)
		return nil
	}
	write()
	return nil
}

func (r *InMemoryRepository) FindUnfulfilledByClient(ctx context.Context, clientID string) ([]*domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.CartItem
	for _, key := range r.order {
		item, exists := r.items[key]
		if !exists {
			continue
		}
		if item.ClientID() == clientID && !item.Fulfilled() {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *InMemoryRepository) FindUnfulfilled(ctx context.Context, clientID, productID string) (*domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		item, exists := r.items[key]
		if !exists {
			continue
		}
		if item.ClientID() == clientID && item.ProductID() == productID && !item.Fulfilled() {
			return item, nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id domain.CartItemID) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := id.String()
		delete(r.items, key)
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

func (r *InMemoryRepository) FulfillAllByClient(ctx context.Context, clientID string) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, item := range r.items {
			if item.ClientID() == clientID && !item.Fulfilled() {
				item.Fulfill()
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
