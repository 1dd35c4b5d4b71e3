package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
)

// SpannerSearchLog implements SearchLogRepository using Cloud Spanner.
type SpannerSearchLog struct {
	client *spanner.Client
}

func NewSpannerSearchLog(client *spanner.Client) *SpannerSearchLog {
	return &SpannerSearchLog{client: client}
}

// Compile-time interface check.
var _ domain.SearchLogRepository = (*SpannerSearchLog)(nil)

var searchColumns = []string{"SearchID", "Term", "SortBy", "SortOrder", "CreatedAt"}

func (r *SpannerSearchLog) Save(ctx context.Context, record *domain.SearchRecord) error {
	mutations := []*spanner.Mutation{
		spanner.Insert("ProductSearches", searchColumns,
			[]interface{}{
				record.ID(),
				record.Term(),
				record.SortBy(),
				record.SortOrder(),
				record.CreatedAt(),
			},
		),
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save search record: %w", err)
	}
	return nil
}

func (r *SpannerSearchLog) FindRecent(ctx context.Context, limit int) ([]*domain.SearchRecord, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: `SELECT SearchID, Term, SortBy, SortOrder, CreatedAt
		      FROM ProductSearches
		      ORDER BY CreatedAt DESC
		      LIMIT @limit`,
		Params: map[string]interface{}{"limit": int64(limit)},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var records []*domain.SearchRecord
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query search records: %w", err)
		}

		var id, term, sortBy, sortOrder string
		var createdAt time.Time
		if err := row.Columns(&id, &term, &sortBy, &sortOrder, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}

		records = append(records, domain.ReconstituteSearchRecord(id, term, sortBy, sortOrder, createdAt))
	}
	return records, nil
}
