package queries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// SearchProductsQuery searches the catalog.
type SearchProductsQuery struct {
	Term      string
	SortBy    string
	SortOrder string
	MinStock  int
}

// SearchProductsHandler runs catalog searches and records each one as an
// audit entry. The audit write is handed to the worker pool so the search
// response never waits on it; a lost record is acceptable.
type SearchProductsHandler struct {
	repo      domain.ProductRepository
	searchLog domain.SearchLogRepository
	pool      *worker.Pool
	logger    *slog.Logger
}

func NewSearchProductsHandler(
	repo domain.ProductRepository,
	searchLog domain.SearchLogRepository,
	pool *worker.Pool,
	logger *slog.Logger,
) *SearchProductsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchProductsHandler{
		repo:      repo,
		searchLog: searchLog,
		pool:      pool,
		logger:    logger,
	}
}

func (h *SearchProductsHandler) Handle(ctx context.Context, query SearchProductsQuery) ([]*ProductDTO, error) {
	filter, err := buildFilter(query)
	if err != nil {
		return nil, err
	}

	products, err := h.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}

	h.recordSearch(query)

	dtos := make([]*ProductDTO, len(products))
	for i, product := range products {
		dtos[i] = toProductDTO(product)
	}
	return dtos, nil
}

func buildFilter(query SearchProductsQuery) (domain.SearchFilter, error) {
	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = domain.SortByName
	}
	if sortBy != domain.SortByName && sortBy != domain.SortByPrice {
		return domain.SearchFilter{}, fmt.Errorf("%w: sort_by must be %q or %q",
			ErrInvalidSearch, domain.SortByName, domain.SortByPrice)
	}

	sortOrder := query.SortOrder
	if sortOrder == "" {
		sortOrder = domain.SortAsc
	}
	if sortOrder != domain.SortAsc && sortOrder != domain.SortDesc {
		return domain.SearchFilter{}, fmt.Errorf("%w: sort_order must be %q or %q",
			ErrInvalidSearch, domain.SortAsc, domain.SortDesc)
	}

	if query.MinStock < 0 {
		return domain.SearchFilter{}, fmt.Errorf("%w: min_stock cannot be negative", ErrInvalidSearch)
	}

	return domain.SearchFilter{
		Term:      query.Term,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		MinStock:  query.MinStock,
	}, nil
}

func (h *SearchProductsHandler) recordSearch(query SearchProductsQuery) {
	record := domain.NewSearchRecord(query.Term, query.SortBy, query.SortOrder)

	err := h.pool.Submit(func(ctx context.Context) {
		if err := h.searchLog.Save(ctx, record); err != nil {
			h.logger.Warn("failed to record product search",
				slog.String("term", record.Term()),
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		h.logger.Warn("search audit task rejected", slog.String("error", err.Error()))
	}
}
