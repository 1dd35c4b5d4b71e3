// Package persistence implements repository interfaces using specific storage backends.
package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/orders/infrastructure/crypto"
)

// InMemoryRepository implements OrderRepository using in-memory storage.
// Writes performed inside a memdb transaction are buffered and applied
// on commit, so a failed placement leaves no order behind.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	order  []string // insertion order per client listing
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[string]*domain.Order),
	}
}

// Compile-time interface check.
var _ domain.OrderRepository = (*InMemoryRepository)(nil)

func (r *InMemoryRepository) Save(ctx context.Context, order *domain.Order) error {
	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		key := order.ID().String()
		if _, exists := r.orders[key]; !exists {
			r.order = append(r.order, key)
		}
		r.orders[key] = order
	}

	if tx, ok := memdb.TxFromContext(ctx); ok {
		tx.Buffer(write)
		return nil
	}
	write()
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id.String()]
	if !exists {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *InMemoryRepository) FindByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Order
	for _, key := range r.order {
		order, exists := r.orders[key]
		if !exists {
			continue
		}
		if order.ClientID() == clientID {
			result = append(result, order)
		}
	}
	return result, nil
}

// encryptedCard is the at-rest shape of card details: every field but
// the token is ciphertext.
type encryptedCard struct {
	token      string
	number     string
	expiration string
	cvv        string
	holder     string
	createdAt  time.Time
}

// InMemoryCardRepository implements CardRepository with field-level
// encryption, mirroring what the Spanner repository stores.
type InMemoryCardRepository struct {
	mu        sync.RWMutex
	encryptor *crypto.Encryptor
	cards     map[string]encryptedCard
}

func NewInMemoryCardRepository(encryptor *crypto.Encryptor) *InMemoryCardRepository {
	return &InMemoryCardRepository{
		encryptor: encryptor,
		cards:     make(map[string]encryptedCard),
	}
}

// Compile-time interface check.
var _ domain.CardRepository = (*InMemoryCardRepository)(nil)

func (r *InMemoryCardRepository) Save(ctx context.Context, card *domain.CreditCardDetails) error {
	stored, err := encryptCard(r.encryptor, card)
	if err != nil {
		return err
	}

	write := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.cards[card.Token()] = stored
	}

	if tx, ok := memdb.TxFromContext(ctx); ok {
		tx.Buffer(write)
		return nil
	}
	write()
	return nil
}

func (r *InMemoryCardRepository) FindByToken(ctx context.Context, token string) (*domain.CreditCardDetails, error) {
	r.mu.RLock()
	stored, exists := r.cards[token]
	r.mu.RUnlock()

	if !exists {
		return nil, domain.ErrCardNotFound
	}
	return decryptCard(r.encryptor, stored)
}

func encryptCard(enc *crypto.Encryptor, card *domain.CreditCardDetails) (encryptedCard, error) {
	fields := [4]string{card.Number(), card.Expiration(), card.CVV(), card.Holder()}
	for i, plain := range fields {
		sealed, err := enc.Encrypt(plain)
		if err != nil {
			return encryptedCard{}, fmt.Errorf("encrypting card field: %w", err)
		}
		fields[i] = sealed
	}
	return encryptedCard{
		token:      card.Token(),
		number:     fields[0],
		expiration: fields[1],
		cvv:        fields[2],
		holder:     fields[3],
		createdAt:  card.CreatedAt(),
	}, nil
}

func decryptCard(enc *crypto.Encryptor, stored encryptedCard) (*domain.CreditCardDetails, error) {
	fields := [4]string{stored.number, stored.expiration, stored.cvv, stored.holder}
	for i, sealed := range fields {
		plain, err := enc.Decrypt(sealed)
		if err != nil {
			return nil, fmt.Errorf("decrypting card field: %w", err)
		}
		fields[i] = plain
	}
	return domain.ReconstituteCreditCardDetails(stored.token, fields[0], fields[1], fields[2], fields[3], stored.createdAt), nil
}
