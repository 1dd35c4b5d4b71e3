package queries

import (
	"context"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// ProductListDTO contains a paginated list of products.
type ProductListDTO struct {
	Products   []*ProductDTO `json:"products"`
	TotalCount int           `json:"total_count"`
	Offset     int           `json:"offset"`
	Limit      int           `json:"limit"`
}

// ListProductsQuery retrieves products with pagination.
type ListProductsQuery struct {
	Offset int
	Limit  int
}

type ListProductsHandler struct {
	repo domain.ProductRepository
}

func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) (*ProductListDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	products, total, err := h.repo.FindAll(ctx, query.Offset, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*ProductDTO, len(products))
	for i, product := range products {
		dtos[i] = toProductDTO(product)
	}

	return &ProductListDTO{
		Products:   dtos,
		TotalCount: total,
		Offset:     query.Offset,
		Limit:      limit,
	}, nil
}
