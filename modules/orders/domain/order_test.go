package domain_test

import (
	"errors"
	"testing"

	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/events/contracts"
	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

func testLines(t *testing.T) []domain.OrderLine {
	t.Helper()
	return []domain.OrderLine{
		{ProductID: "p1", SKU: "SKU-1", Name: "Widget", Quantity: 2, UnitPrice: types.MustNewMoney(1000, "USD")},
		{ProductID: "p2", SKU: "SKU-2", Name: "Gadget", Quantity: 1, UnitPrice: types.MustNewMoney(2550, "USD")},
	}
}

func TestNewOrder(t *testing.T) {
	order, err := domain.NewOrder("client-1", testLines(t), "1 Main St", "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status() != domain.StatusProcessing {
		t.Errorf("expected status PROCESSING, got %s", order.Status())
	}
	// 2 x 10.00 + 1 x 25.50
	if order.Total().Amount() != 4550 {
		t.Errorf("expected total 4550, got %d", order.Total().Amount())
	}
	if order.ClientID() != "client-1" {
		t.Errorf("expected client-1, got %s", order.ClientID())
	}
	if len(order.Lines()) != 2 {
		t.Errorf("expected 2 lines, got %d", len(order.Lines()))
	}
}

func TestNewOrder_CollectsPlacedEvent(t *testing.T) {
	order, err := domain.NewOrder("client-1", testLines(t), "1 Main St", "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	collected := order.PopDomainEvents()
	if len(collected) != 1 {
		t.Fatalf("expected 1 collected event, got %d", len(collected))
	}

	placed, ok := collected[0].(*contracts.OrderPlacedEvent)
	if !ok {
		t.Fatalf("expected OrderPlacedEvent, got %T", collected[0])
	}
	if placed.OrderID != order.ID().String() {
		t.Errorf("expected event order id %s, got %s", order.ID(), placed.OrderID)
	}
	if placed.TotalAmount != 4550 {
		t.Errorf("expected event total 4550, got %d", placed.TotalAmount)
	}

	// Pop drains the buffer.
	if remaining := order.PopDomainEvents(); len(remaining) != 0 {
		t.Errorf("expected no events after pop, got %d", len(remaining))
	}
}

func TestNewOrder_Validation(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		lines    []domain.OrderLine
		token    string
		wantErr  error
	}{
		{"missing client", "", testLines(t), "token-1", domain.ErrClientRequired},
		{"empty cart", "client-1", nil, "token-1", domain.ErrEmptyCart},
		{"missing token", "client-1", testLines(t), "", domain.ErrCardTokenRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewOrder(tt.clientID, tt.lines, "1 Main St", tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOrder_Complete(t *testing.T) {
	order := createTestOrder(t)

	if err := order.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status() != domain.StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", order.Status())
	}

	// Terminal transitions are one-shot.
	if err := order.Complete(); !errors.Is(err, domain.ErrOrderSettled) {
		t.Errorf("expected ErrOrderSettled on second Complete, got %v", err)
	}
	if err := order.Fail(); !errors.Is(err, domain.ErrOrderSettled) {
		t.Errorf("expected ErrOrderSettled on Fail after Complete, got %v", err)
	}
}

func TestOrder_Fail(t *testing.T) {
	order := createTestOrder(t)

	if err := order.Fail(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status() != domain.StatusFailed {
		t.Errorf("expected FAILED, got %s", order.Status())
	}
	if err := order.Complete(); !errors.Is(err, domain.ErrOrderSettled) {
		t.Errorf("expected ErrOrderSettled on Complete after Fail, got %v", err)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	if domain.StatusProcessing.IsTerminal() {
		t.Error("expected PROCESSING to be non-terminal")
	}
	if !domain.StatusCompleted.IsTerminal() {
		t.Error("expected COMPLETED to be terminal")
	}
	if !domain.StatusFailed.IsTerminal() {
		t.Error("expected FAILED to be terminal")
	}
}

func createTestOrder(t *testing.T) *domain.Order {
	t.Helper()

	order, err := domain.NewOrder("client-1", testLines(t), "1 Main St", "token-1")
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	order.PopDomainEvents()
	return order
}
