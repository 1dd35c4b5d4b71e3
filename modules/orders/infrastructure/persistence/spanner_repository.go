package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/orders/infrastructure/crypto"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

// SpannerRepository implements OrderRepository using Cloud Spanner.
// Lines live in an OrderLines table interleaved in Orders, so an order
// and its lines are always written and read together.
type SpannerRepository struct {
	client *spanner.Client
}

// NewSpannerRepository creates a new Spanner-backed order repository.
func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.OrderRepository = (*SpannerRepository)(nil)

var orderColumns = []string{"OrderID", "ClientID", "TotalAmount", "Currency", "DeliveryAddress", "CardToken", "Status", "CreatedAt", "UpdatedAt"}

func (r *SpannerRepository) Save(ctx context.Context, order *domain.Order) error {
	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Orders", orderColumns,
			[]interface{}{
				order.ID().String(),
				order.ClientID(),
				order.Total().Amount(),
				order.Total().Currency(),
				order.DeliveryAddress(),
				order.CardToken(),
				order.Status().String(),
				order.CreatedAt(),
				order.UpdatedAt(),
			},
		),
	}

	for i, line := range order.Lines() {
		mutations = append(mutations, spanner.InsertOrUpdate("OrderLines",
			[]string{"OrderID", "LineNumber", "ProductID", "SKU", "Name", "Quantity", "UnitPriceAmount", "Currency"},
			[]interface{}{
				order.ID().String(),
				int64(i + 1),
				line.ProductID,
				line.SKU,
				line.Name,
				int64(line.Quantity),
				line.UnitPrice.Amount(),
				line.UnitPrice.Currency(),
			},
		))
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	row, err := rtx.ReadRow(ctx, "Orders", spanner.Key{id.String()}, orderColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	order, err := r.scanOrder(ctx, rtx, row)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *SpannerRepository) FindByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	stmt := spanner.Statement{
		SQL: `SELECT OrderID, ClientID, TotalAmount, Currency, DeliveryAddress, CardToken, Status, CreatedAt, UpdatedAt
		      FROM Orders
		      WHERE ClientID = @clientID
		      ORDER BY CreatedAt`,
		Params: map[string]interface{}{"clientID": clientID},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var orders []*domain.Order
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}

		order, err := r.scanOrder(ctx, rtx, row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *SpannerRepository) scanOrder(ctx context.Context, rtx platformspanner.ReadTransaction, row *spanner.Row) (*domain.Order, error) {
	var orderID, clientID, currency, deliveryAddress, cardToken, status string
	var totalAmount int64
	var createdAt, updatedAt time.Time

	if err := row.Columns(&orderID, &clientID, &totalAmount, &currency, &deliveryAddress, &cardToken, &status, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	id, err := domain.ParseOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order id: %w", err)
	}
	parsedStatus, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	total, err := types.NewMoney(totalAmount, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total: %w", err)
	}

	lines, err := r.readLines(ctx, rtx, orderID)
	if err != nil {
		return nil, err
	}

	return domain.Reconstitute(id, clientID, lines, total, deliveryAddress, cardToken, parsedStatus, createdAt, updatedAt), nil
}

func (r *SpannerRepository) readLines(ctx context.Context, rtx platformspanner.ReadTransaction, orderID string) ([]domain.OrderLine, error) {
	stmt := spanner.Statement{
		SQL: `SELECT ProductID, SKU, Name, Quantity, UnitPriceAmount, Currency
		      FROM OrderLines
		      WHERE OrderID = @orderID
		      ORDER BY LineNumber`,
		Params: map[string]interface{}{"orderID": orderID},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var lines []domain.OrderLine
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query order lines: %w", err)
		}

		var productID, sku, name, currency string
		var quantity, unitPrice int64
		if err := row.Columns(&productID, &sku, &name, &quantity, &unitPrice, &currency); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}

		price, err := types.NewMoney(unitPrice, currency)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line price: %w", err)
		}

		lines = append(lines, domain.OrderLine{
			ProductID: productID,
			SKU:       sku,
			Name:      name,
			Quantity:  int(quantity),
			UnitPrice: price,
		})
	}
	return lines, nil
}

// SpannerCardRepository implements CardRepository using Cloud Spanner,
// encrypting every card field before it is buffered.
type SpannerCardRepository struct {
	client    *spanner.Client
	encryptor *crypto.Encryptor
}

func NewSpannerCardRepository(client *spanner.Client, encryptor *crypto.Encryptor) *SpannerCardRepository {
	return &SpannerCardRepository{client: client, encryptor: encryptor}
}

// Compile-time interface check.
var _ domain.CardRepository = (*SpannerCardRepository)(nil)

var cardColumns = []string{"CardToken", "Number", "Expiration", "CVV", "Holder", "CreatedAt"}

func (r *SpannerCardRepository) Save(ctx context.Context, card *domain.CreditCardDetails) error {
	stored, err := encryptCard(r.encryptor, card)
	if err != nil {
		return err
	}

	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("CreditCards", cardColumns,
			[]interface{}{
				stored.token,
				stored.number,
				stored.expiration,
				stored.cvv,
				stored.holder,
				stored.createdAt,
			},
		),
	}

	if txn, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return txn.BufferWrite(mutations)
	}

	if _, err := r.client.Apply(ctx, mutations); err != nil {
		return fmt.Errorf("failed to save card details: %w", err)
	}
	return nil
}

func (r *SpannerCardRepository) FindByToken(ctx context.Context, token string) (*domain.CreditCardDetails, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "CreditCards", spanner.Key{token}, cardColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to read card details: %w", err)
	}

	var storedToken, number, expiration, cvv, holder string
	var createdAt time.Time
	if err := row.Columns(&storedToken, &number, &expiration, &cvv, &holder, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan card details: %w", err)
	}

	return decryptCard(r.encryptor, encryptedCard{
		token:      storedToken,
		number:     number,
		expiration: expiration,
		cvv:        cvv,
		holder:     holder,
		createdAt:  createdAt,
	})
}
