package queries

import (
	"context"
	"errors"
	"time"

	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// ErrInvalidSearch indicates malformed search parameters.
var ErrInvalidSearch = errors.New("invalid search parameters")

// SearchRecordDTO is a read model for a search audit entry.
type SearchRecordDTO struct {
	ID        string    `json:"id"`
	Term      string    `json:"term"`
	SortBy    string    `json:"sort_by,omitempty"`
	SortOrder string    `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// recentSearchLimit caps the recent-activity listing.
const recentSearchLimit = 10

type RecentSearchesHandler struct {
	searchLog domain.SearchLogRepository
}

func NewRecentSearchesHandler(searchLog domain.SearchLogRepository) *RecentSearchesHandler {
	return &RecentSearchesHandler{searchLog: searchLog}
}

func (h *RecentSearchesHandler) Handle(ctx context.Context) ([]*SearchRecordDTO, error) {
	records, err := h.searchLog.FindRecent(ctx, recentSearchLimit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*SearchRecordDTO, len(records))
	for i, record := range records {
		dtos[i] = &SearchRecordDTO{
			ID:        record.ID(),
			Term:      record.Term(),
			SortBy:    record.SortBy(),
			SortOrder: record.SortOrder(),
			CreatedAt: record.CreatedAt(),
		}
	}
	return dtos, nil
}
