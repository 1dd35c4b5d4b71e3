package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/products/application/queries"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
	"github.com/rai/commerce-monolith-go/modules/products/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

func seedCatalog(t *testing.T) *persistence.InMemoryRepository {
	t.Helper()

	repo := persistence.NewInMemoryRepository()
	seed := []struct {
		sku, name, description string
		price                  int64
		quantity               int
	}{
		{"SKU-1", "Walnut Desk", "solid wood desk", 45000, 3},
		{"SKU-2", "Office Chair", "ergonomic chair with walnut arms", 20000, 0},
		{"SKU-3", "Bookshelf", "five shelf unit", 12000, 10},
	}
	for _, s := range seed {
		product, err := domain.NewProduct(s.sku, s.name, s.description, types.MustNewMoney(s.price, "USD"), s.quantity)
		if err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
		if err := repo.Save(context.Background(), product); err != nil {
			t.Fatalf("failed to save product: %v", err)
		}
	}
	return repo
}

func newSearchHandler(t *testing.T, repo domain.ProductRepository) (*queries.SearchProductsHandler, *persistence.InMemorySearchLog, *worker.Pool) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	searchLog := persistence.NewInMemorySearchLog()
	pool := worker.NewPool(1, 4, logger)
	return queries.NewSearchProductsHandler(repo, searchLog, pool, logger), searchLog, pool
}

func drain(t *testing.T, pool *worker.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		t.Fatalf("failed to drain pool: %v", err)
	}
}

func TestSearchProductsHandler_Handle_TermMatchesNameAndDescription(t *testing.T) {
	handler, _, pool := newSearchHandler(t, seedCatalog(t))
	defer drain(t, pool)

	results, err := handler.Handle(context.Background(), queries.SearchProductsQuery{Term: "walnut"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "Walnut Desk" by name, "Office Chair" by description.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestSearchProductsHandler_Handle_MinStockFilters(t *testing.T) {
	handler, _, pool := newSearchHandler(t, seedCatalog(t))
	defer drain(t, pool)

	results, err := handler.Handle(context.Background(), queries.SearchProductsQuery{MinStock: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, dto := range results {
		if dto.SKU == "SKU-2" {
			t.Error("expected the out-of-stock product to be filtered out")
		}
	}
	if len(results) != 2 {
		t.Errorf("expected 2 in-stock results, got %d", len(results))
	}
}

func TestSearchProductsHandler_Handle_SortByPriceDesc(t *testing.T) {
	handler, _, pool := newSearchHandler(t, seedCatalog(t))
	defer drain(t, pool)

	results, err := handler.Handle(context.Background(), queries.SearchProductsQuery{
		SortBy:    domain.SortByPrice,
		SortOrder: domain.SortDesc,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].SKU != "SKU-1" || results[2].SKU != "SKU-3" {
		t.Errorf("expected price-descending order, got %s, %s, %s",
			results[0].SKU, results[1].SKU, results[2].SKU)
	}
}

func TestSearchProductsHandler_Handle_DefaultSortByNameAsc(t *testing.T) {
	handler, _, pool := newSearchHandler(t, seedCatalog(t))
	defer drain(t, pool)

	results, err := handler.Handle(context.Background(), queries.SearchProductsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Name != "Bookshelf" {
		t.Errorf("expected name-ascending order, got %q first", results[0].Name)
	}
}

func TestSearchProductsHandler_Handle_InvalidParameters(t *testing.T) {
	handler, _, pool := newSearchHandler(t, seedCatalog(t))
	defer drain(t, pool)

	tests := []struct {
		name  string
		query queries.SearchProductsQuery
	}{
		{"bad sort_by", queries.SearchProductsQuery{SortBy: "sku"}},
		{"bad sort_order", queries.SearchProductsQuery{SortOrder: "sideways"}},
		{"negative min_stock", queries.SearchProductsQuery{MinStock: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handler.Handle(context.Background(), tt.query); !errors.Is(err, queries.ErrInvalidSearch) {
				t.Errorf("expected ErrInvalidSearch, got %v", err)
			}
		})
	}
}

func TestSearchProductsHandler_Handle_RecordsSearch(t *testing.T) {
	handler, searchLog, pool := newSearchHandler(t, seedCatalog(t))

	if _, err := handler.Handle(context.Background(), queries.SearchProductsQuery{Term: "walnut"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The audit write runs on the pool; drain it before asserting.
	drain(t, pool)

	records, err := searchLog.FindRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 search record, got %d", len(records))
	}
	if records[0].Term() != "walnut" {
		t.Errorf("expected term 'walnut', got %q", records[0].Term())
	}
}

func TestRecentSearchesHandler_Handle_NewestFirst(t *testing.T) {
	searchLog := persistence.NewInMemorySearchLog()
	for _, term := range []string{"first", "second", "third"} {
		if err := searchLog.Save(context.Background(), domain.NewSearchRecord(term, "", "")); err != nil {
			t.Fatalf("failed to save record: %v", err)
		}
	}

	handler := queries.NewRecentSearchesHandler(searchLog)

	dtos, err := handler.Handle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dtos) != 3 {
		t.Fatalf("expected 3 records, got %d", len(dtos))
	}
	if dtos[0].Term != "third" || dtos[2].Term != "first" {
		t.Errorf("expected newest first, got %q, %q, %q", dtos[0].Term, dtos[1].Term, dtos[2].Term)
	}
}
