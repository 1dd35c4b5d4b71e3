package types_test

import (
	"testing"

	"github.com/rai/commerce-monolith-go/modules/shared/types"
)

func TestNewMoney_Validation(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		wantErr  bool
	}{
		{"valid", 1050, "USD", false},
		{"zero amount", 0, "USD", false},
		{"negative amount allowed", -500, "USD", false},
		{"empty currency", 100, "", true},
		{"short currency", 100, "US", true},
		{"long currency", 100, "USDT", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := types.NewMoney(tt.amount, tt.currency)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewMoney(%d, %q) error = %v, wantErr %v", tt.amount, tt.currency, err, tt.wantErr)
			}
			if err == nil && m.Amount() != tt.amount {
				t.Errorf("expected amount %d, got %d", tt.amount, m.Amount())
			}
		})
	}
}

func TestMoney_Add(t *testing.T) {
	a := types.MustNewMoney(2000, "USD")
	b := types.MustNewMoney(2550, "USD")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Amount() != 4550 {
		t.Errorf("expected 4550, got %d", sum.Amount())
	}
	if sum.Currency() != "USD" {
		t.Errorf("expected USD, got %s", sum.Currency())
	}

	// Operands are unchanged.
	if a.Amount() != 2000 || b.Amount() != 2550 {
		t.Error("expected Add to leave operands untouched")
	}
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	usd := types.MustNewMoney(100, "USD")
	eur := types.MustNewMoney(100, "EUR")

	if _, err := usd.Add(eur); err == nil {
		t.Fatal("expected error adding different currencies")
	}
}

func TestMoney_Multiply(t *testing.T) {
	price := types.MustNewMoney(1000, "USD")

	subtotal := price.Multiply(3)

	if subtotal.Amount() != 3000 {
		t.Errorf("expected 3000, got %d", subtotal.Amount())
	}
	if price.Amount() != 1000 {
		t.Error("expected Multiply to leave the receiver untouched")
	}
}

func TestMoney_Predicates(t *testing.T) {
	if !types.MustNewMoney(0, "USD").IsZero() {
		t.Error("expected zero amount to be zero")
	}
	if !types.MustNewMoney(-1, "USD").IsNegative() {
		t.Error("expected negative amount to be negative")
	}
	if types.MustNewMoney(1, "USD").IsNegative() {
		t.Error("expected positive amount not to be negative")
	}
}

func TestMoney_Units(t *testing.T) {
	m := types.MustNewMoney(4550, "USD")

	if got := m.Units(); got != 45.50 {
		t.Errorf("expected 45.50, got %v", got)
	}
}

func TestMoney_Equals(t *testing.T) {
	a := types.MustNewMoney(100, "USD")
	b := types.MustNewMoney(100, "USD")
	c := types.MustNewMoney(100, "EUR")

	if !a.Equals(b) {
		t.Error("expected equal amounts and currencies to be equal")
	}
	if a.Equals(c) {
		t.Error("expected different currencies not to be equal")
	}
}
