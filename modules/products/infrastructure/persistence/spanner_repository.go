package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// SpannerRepository implements ProductRepository using Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed product repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.ProductRepository = (*SpannerRepository)(nil)

var productColumns = []string{"ProductID", "SKU", "Name", "Description", "PriceAmount", "Currency", "Quantity", "CreatedAt", "UpdatedAt"}

func (r *SpannerRepository) Save(ctx context.Context, product *domain.Product) error {
	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Products", productColumns,
			[]interface{}{
				product.ID().String(),
				product.SKU(),
				product.Name(),
				product.Description(),
				product.Price().Amount(),
				product.Price().Currency(),
				int64(product.Quantity()),
				product.CreatedAt(),
				product.UpdatedAt(),
			},
		),
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "Products", spanner.Key{id.String()}, productColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	return r.scanProduct(row)
}

func (r *SpannerRepository) FindAll(ctx context.Context, offset, limit int) ([]*domain.Product, int, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	countIter := rtx.Query(ctx, spanner.Statement{SQL: `SELECT COUNT(*) FROM Products`})
	defer countIter.Stop()

	var total int64
	countRow, err := countIter.Next()
	if err != nil && err != iterator.Done {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	if countRow != nil {
		if err := countRow.Columns(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}

	stmt := spanner.Statement{
		SQL: `SELECT ProductID, SKU, Name, Description, PriceAmount, Currency, Quantity, CreatedAt, UpdatedAt
		      FROM Products
		      ORDER BY CreatedAt
		      LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}

	products, err := r.queryProducts(ctx, rtx, stmt)
	if err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (r *SpannerRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	// Sort column and direction are validated against fixed sets by the
	// application layer; they never carry raw user input.
	orderBy := "LOWER(Name)"
	if filter.SortBy == domain.SortByPrice {
		orderBy = "PriceAmount"
	}
	direction := "ASC"
	if filter.SortOrder == domain.SortDesc {
		direction = "DESC"
	}

	stmt := spanner.Statement{
		SQL: fmt.Sprintf(`SELECT ProductID, SKU, Name, Description, PriceAmount, Currency, Quantity, CreatedAt, UpdatedAt
		      FROM Products
		      WHERE Quantity >= @minStock
		        AND (@term = '' OR LOWER(Name) LIKE @pattern OR LOWER(Description) LIKE @pattern)
		      ORDER BY %s %s`, orderBy, direction),
		Params: map[string]interface{}{
			"minStock": int64(filter.MinStock),
			"term":     strings.TrimSpace(filter.Term),
			"pattern":  "%" + escapeLike(filter.Term) + "%",
		},
	}

	return r.queryProducts(ctx, rtx, stmt)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term)))
}

func (r *SpannerRepository) Delete(ctx context.Context, id domain.ProductID) error {
	mutations := []*spanner.Mutation{
		spanner.Delete("Products", spanner.Key{id.String()}),
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *SpannerRepository) SKUInUse(ctx context.Context, sku string, excluding domain.ProductID) (bool, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	stmt := spanner.Statement{
		SQL: `SELECT 1 FROM Products WHERE SKU = @sku AND ProductID != @excluding LIMIT 1`,
		Params: map[string]interface{}{
			"sku":       sku,
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
		return false, fmt.Errorf("failed to check SKU uniqueness: %w", err)
	}
	return true, nil
}

func (r *SpannerRepository) queryProducts(ctx context.Context, rtx platformspanner.ReadTransaction, stmt spanner.Statement) ([]*domain.Product, error) {
	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var products []*domain.Product
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query products: %w", err)
		}

		product, err := r.scanProduct(row)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *SpannerRepository) scanProduct(row *spanner.Row) (*domain.Product, error) {
	var productID, sku, name, description, currency string
	var priceAmount, quantity int64
	var createdAt, updatedAt time.Time

	if err := row.Columns(&productID, &sku, &name, &description, &priceAmount, &currency, &quantity, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	id, err := domain.ParseProductID(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product id: %w", err)
	}

	price, err := types.NewMoney(priceAmount, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}

	return domain.Reconstitute(id, sku, name, description, price, int(quantity), createdAt, updatedAt), nil
}
