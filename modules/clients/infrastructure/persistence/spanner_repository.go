package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

// SpannerRepository implements ClientRepository using Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed client repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.ClientRepository = (*SpannerRepository)(nil)

var clientColumns = []string{"ClientID", "Name", "Email", "Phone", "Address", "CreatedAt", "UpdatedAt"}

func (r *SpannerRepository) Save(ctx context.Context, client *domain.Client) error {
	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Clients", clientColumns,
			[]interface{}{
				client.ID().String(),
				client.Name(),
				client.Email().String(),
				client.Phone().String(),
				client.Address(),
				client.CreatedAt(),
				client.UpdatedAt(),
			},
		),
	}

	// Use existing transaction if available
	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	// Fallback: standalone mutation
	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "Clients", spanner.Key{id.String()}, clientColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to read client: %w", err)
	}

	return r.scanClient(row)
}

func (r *SpannerRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Client, int, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	countIter := rtx.Query(ctx, spanner.Statement{SQL: `SELECT COUNT(*) FROM Clients`})
	defer countIter.Stop()

	var total int64
	countRow, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}
	if countRow != nil {
		if err := countRow.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	stmt := spanner.Statement{
		SQL: `SELECT ClientID, Name, Email, Phone, Address, CreatedAt, UpdatedAt
		      FROM Clients
		      ORDER BY CreatedAt
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var clients []*domain.Client
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to query clients: %w", err)
		}

		client, err := r.scanClient(row)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, client)
	}

	return clients, int(total), nil
}

func (r *SpannerRepository) Delete(ctx context.Context, id domain.ClientID) error {
	mutations := []*spanner.Mutation{
		spanner.Delete("Clients", spanner.Key{id.String()}),
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (r *SpannerRepository) EmailInUse(ctx context.Context, email domain.Email, excluding domain.ClientID) (bool, error) {
	return r.valueInUse(ctx, "Email", email.String(), excluding)
}

func (r *SpannerRepository) PhoneInUse(ctx context.Context, phone domain.Phone, excluding domain.ClientID) (bool, error) {
	return r.valueInUse(ctx, "Phone", phone.String(), excluding)
}

func (r *SpannerRepository) valueInUse(ctx context.Context, column, value string, excluding domain.ClientID) (bool, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: fmt.Sprintf(`SELECT 1 FROM Clients WHERE %s = @value AND ClientID != @excluding LIMIT 1`, column),
		Params: map[string]interface{}{
			"value":     value,
			"excluding": excluding.String(),
		},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s uniqueness: %w", column, err)
	}
	return true, nil
}

func (r *SpannerRepository) scanClient(row *spanner.Row) (*domain.Client, error) {
	var clientID, name, emailStr, phoneStr, address string
	var createdAt, updatedAt time.Time

	if err := row.Columns(&clientID, &name, &emailStr, &phoneStr, &address, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}

	id, err := domain.ParseClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client id: %w", err)
	}

	email, err := domain.NewEmail(emailStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	phone, err := domain.NewPhone(phoneStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone: %w", err)
	}

	return domain.Reconstitute(id, name, email, phone, address, createdAt, updatedAt), nil
}
