package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/modules/apilog/domain"
)

// SpannerRepository implements Repository using Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.Repository = (*SpannerRepository)(nil)

var logColumns = []string{"LogID", "Method", "Path", "Status", "RequestBody", "ResponseBody", "CreatedAt"}

func (r *SpannerRepository) Save(ctx context.Context, record *domain.Record) error {
	mutations := []*spanner.Mutation{
		spanner.Insert("ApiLogs", logColumns,
			[]interface{}{
				record.ID(),
				record.Method(),
				record.Path(),
				int64(record.Status()),
				record.RequestBody(),
				record.ResponseBody(),
				record.CreatedAt(),
			},
		),
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save api log: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindRecent(ctx context.Context, limit int) ([]*domain.Record, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: `SELECT LogID, Method, Path, Status, RequestBody, ResponseBody, CreatedAt
		      FROM ApiLogs
		      ORDER BY CreatedAt DESC
		      LIMIT @limit`,
		Params: map[string]interface{}{"limit": int64(limit)},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var records []*domain.Record
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query api logs: %w", err)
		}

		var id, method, path, requestBody, responseBody string
		var status int64
		var createdAt time.Time
		if err := row.Columns(&id, &method, &path, &status, &requestBody, &responseBody, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan api log: %w", err)
		}

		records = append(records, domain.Reconstitute(id, method, path, int(status), requestBody, responseBody, createdAt))
	}
	return records, nil
}
