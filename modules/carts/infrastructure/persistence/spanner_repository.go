package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/modules/carts/domain"
)

// SpannerRepository implements CartRepository using Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed cart repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.CartRepository = (*SpannerRepository)(nil)

var cartItemColumns = []string{"CartItemID", "ClientID", "ProductID", "Quantity", "Fulfilled", "CreatedAt", "UpdatedAt"}

func (r *SpannerRepository) Save(ctx context.Context, item *domain.CartItem) error {
	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("CartItems", cartItemColumns,
			[]interface{}{
				item.ID().String(),
				item.ClientID(),
				item.ProductID(),
				int64(item.Quantity()),
				item.Fulfilled(),
				item.CreatedAt(),
				item.UpdatedAt(),
			},
		),
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindUnfulfilledByClient(ctx context.Context, clientID string) ([]*domain.CartItem, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	stmt := spanner.Statement{
		SQL: `SELECT CartItemID, ClientID, ProductID, Quantity, Fulfilled, CreatedAt, UpdatedAt
		      FROM CartItems
		      WHERE ClientID = @clientID AND Fulfilled = FALSE
		      ORDER BY CreatedAt`,
		Params: map[string]interface{}{"clientID": clientID},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var items []*domain.CartItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query cart items: %w", err)
		}

		item, err := r.scanCartItem(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *SpannerRepository) FindUnfulfilled(ctx context.Context, clientID, productID string) (*domain.CartItem, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: `SELECT CartItemID, ClientID, ProductID, Quantity, Fulfilled, CreatedAt, UpdatedAt
		      FROM CartItems
		      WHERE ClientID = @clientID AND ProductID = @productID AND Fulfilled = FALSE
		      LIMIT 1`,
		Params: map[string]interface{}{
			"clientID":  clientID,
			"productID": productID,
		},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return r.scanCartItem(row)
}

func (r *SpannerRepository) Delete(ctx context.Context, id domain.CartItemID) error {
	mutations := []*spanner.Mutation{
		spanner.Delete("CartItems", spanner.Key{id.String()}),
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrCartItemNotFound
		}
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// FulfillAllByClient flips every open line for the client inside the
// surrounding read-write transaction. It reads the open lines first and
// buffers one update per line; Spanner applies them atomically at commit.
func (r *SpannerRepository) FulfillAllByClient(ctx context.Context, clientID string) error {
	items, err := r.FindUnfulfilledByClient(ctx, clientID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	mutations := make([]*spanner.Mutation, 0, len(items))
	for _, item := range items {
		mutations = append(mutations, spanner.Update("CartItems",
			[]string{"CartItemID", "Fulfilled", "UpdatedAt"},
			[]interface{}{item.ID().String(), true, now},
		))
	}
	if len(mutations) == 0 {
		return nil
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to fulfill cart items: %w", err)
	}
	return nil
}

func (r *SpannerRepository) scanCartItem(row *spanner.Row) (*domain.CartItem, error) {
	var itemID, clientID, productID string
	var quantity int64
	var fulfilled bool
	var createdAt, updatedAt time.Time

	if err := row.Columns(&itemID, &clientID, &productID, &quantity, &fulfilled, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan cart item: %w", err)
	}

	id, err := domain.ParseCartItemID(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cart item id: %w", err)
	}

	return domain.ReconstituteCartItem(id, clientID, productID, int(quantity), fulfilled, createdAt, updatedAt), nil
}
