package domain

import "context"

// Search sort fields and directions accepted by SearchFilter.
const (
	SortByName  = "name"
	SortByPrice = "price"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// SearchFilter narrows and orders a catalog search.
// A zero filter matches everything in insertion order.
type SearchFilter struct {
	Term      string // case-insensitive match on name or description
	SortBy    string // SortByName or SortByPrice
	SortOrder string // SortAsc or SortDesc
	MinStock  int    // exclude products with fewer units in stock
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id ProductID) (*Product, error)
	FindAll(ctx context.Context, offset, limit int) ([]*Product, int, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Product, error)
	Delete(ctx context.Context, id ProductID) error

	// SKUInUse reports whether another product (excluding the given ID)
	// already uses the SKU. Pass a zero ProductID on create.
	SKUInUse(ctx context.Context, sku string, excluding ProductID) (bool, error)
}

// SearchLogRepository persists catalog search audit records.
type SearchLogRepository interface {
	Save(ctx context.Context, record *SearchRecord) error
	// FindRecent returns the most recent records, newest first.
	FindRecent(ctx context.Context, limit int) ([]*SearchRecord, error)
}
