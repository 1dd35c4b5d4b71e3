// Package persistence implements repository interfaces using specific storage backends.
package persistence

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// InMemoryRepository implements ProductRepository using in-memory storage.
// Writes performed inside a memdb transaction are buffered and become
// visible only after the transaction commits.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string // insertion order for deterministic listing
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		products: make(map[string]*domain.Product),
	}
}

// Compile-time interface check.
var _ domain.ProductRepository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, product *domain.Product) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := product.ID().String()
		if _, exists := r.products[key]; !exists {
			r.order = append(r.order, key)
		}
		r.products[key] = product
	}

	if tx, ok := memdb.TxFromContext(ctx); ok {
		tx.Buffer(write)
		return nil
	}
	write()
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id.String()]
	if !exists {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *InMemoryRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.order)
	if offset >= total {
		return []*domain.Product{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	result := make([]*domain.Product, 0, end-offset)
	for _, key := range r.order[offset:end] {
		result = append(result, r.products[key])
	}
	return result, total, nil
}

func (r *InMemoryRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Term))

	var matched []*domain.Product
	for _, key := range r.order {
		product := r.products[key]
		if product.Quantity() < filter.MinStock {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(product.Name()), term) &&
			!strings.Contains(strings.ToLower(product.Description()), term) {
			continue
		}
		matched = append(matched, product)
	}

	sortProducts(matched, filter.SortBy, filter.SortOrder)
	return matched, nil
}

func sortProducts(products []*domain.Product, sortBy, sortOrder string) {
	less := func(a, b *domain.Product) bool {
		if sortBy == domain.SortByPrice {
			return a.Price().Amount() < b.Price().Amount()
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	}

	sort.SliceStable(products, func(i, j int) bool {
		if sortOrder == domain.SortDesc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func (r *InMemoryRepository) Delete(ctx context.Context, id domain.ProductID) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := id.String()
		delete(r.products, key)
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

func (r *InMemoryRepository) SKUInUse(ctx context.Context, sku string, excluding domain.ProductID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.products {
		if product.ID() == excluding {
			continue
		}
		if product.SKU() == sku {
			return true, nil
		}
	}
	return false, nil
}
