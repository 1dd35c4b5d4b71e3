package domain_test

import (
	"testing"

	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

func TestNewClient(t *testing.T) {
	email, err := domain.NewEmail("john@example.com")
	if err != nil {
		t.Fatalf("failed to create email: %v", err)
	}
	phone, err := domain.NewPhone("+14155550123")
	if err != nil {
		t.Fatalf("failed to create phone: %v", err)
	}

	client, err := domain.NewClient("John Doe", email, phone, "1 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.ID().IsZero() {
		t.Error("expected client to have an ID")
	}
	if client.Name() != "John Doe" {
		t.Errorf("expected name 'John Doe', got %q", client.Name())
	}
	if client.Email().String() != "john@example.com" {
		t.Errorf("expected email 'john@example.com', got %q", client.Email())
	}
	if !client.HasAddress() {
		t.Error("expected client to have an address")
	}
}

func TestNewClient_BlankName(t *testing.T) {
	client := createTestClient(t)

	if _, err := domain.NewClient("   ", client.Email(), client.Phone(), ""); err != domain.ErrNameRequired {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestNewClient_OptionalAddress(t *testing.T) {
	email, _ := domain.NewEmail("john@example.com")
	phone, _ := domain.NewPhone("+14155550123")

	client, err := domain.NewClient("John Doe", email, phone, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.HasAddress() {
		t.Error("expected no address on file")
	}
}

func TestClient_UpdateDetails(t *testing.T) {
	client := createTestClient(t)

	newEmail, _ := domain.NewEmail("jane@example.com")
	newPhone, _ := domain.NewPhone("+14155550999")

	if err := client.UpdateDetails("Jane Smith", newEmail, newPhone, "2 Oak Ave"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if client.Name() != "Jane Smith" {
		t.Errorf("expected name 'Jane Smith', got %q", client.Name())
	}
	if client.Email().String() != "jane@example.com" {
		t.Errorf("expected updated email, got %q", client.Email())
	}
	if client.Address() != "2 Oak Ave" {
		t.Errorf("expected updated address, got %q", client.Address())
	}
}

func TestEmail_Validation(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"valid email", "john@example.com", nil},
		{"uppercase normalized", "John@Example.COM", nil},
		{"empty email", "", domain.ErrEmailRequired},
		{"missing @", "johnexample.com", domain.ErrEmailInvalid},
		{"missing domain", "john@", domain.ErrEmailInvalid},
		{"missing tld", "john@example", domain.ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewEmail(tt.email)
			if err != tt.wantErr {
				t.Errorf("NewEmail(%q) error = %v, want %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestEmail_Normalization(t *testing.T) {
	email, err := domain.NewEmail("  John@Example.COM  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email.String() != "john@example.com" {
		t.Errorf("expected normalized email, got %q", email.String())
	}
}

func TestPhone_Validation(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{"valid with plus", "+14155550123", nil},
		{"valid digits only", "4155550123", nil},
		{"minimum length", "1234567", nil},
		{"empty phone", "", domain.ErrPhoneRequired},
		{"too short", "123456", domain.ErrPhoneInvalid},
		{"too long", "1234567890123456", domain.ErrPhoneInvalid},
		{"letters", "415CALLME0", domain.ErrPhoneInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewPhone(tt.phone)
			if err != tt.wantErr {
				t.Errorf("NewPhone(%q) error = %v, want %v", tt.phone, err, tt.wantErr)
			}
		})
	}
}

func createTestClient(t *testing.T) *domain.Client {
	t.Helper()

	email, err := domain.NewEmail("john@example.com")
	if err != nil {
		t.Fatalf("failed to create email: %v", err)
	}
	phone, err := domain.NewPhone("+14155550123")
	if err != nil {
		t.Fatalf("failed to create phone: %v", err)
	}

	client, err := domain.NewClient("John Doe", email, phone, "1 Main St")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}
