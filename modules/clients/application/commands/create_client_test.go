package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	"github.com/rai/commerce-monolith-go/modules/clients/application/commands"
	"github.com/rai/commerce-monolith-go/modules/clients/domain"
	"github.com/rai/commerce-monolith-go/modules/clients/infrastructure/persistence"
)

func validCommand() commands.CreateClientCommand {
	return commands.CreateClientCommand{
		Name:    "John Doe",
		Email:   "john@example.com",
		Phone:   "+14155550123",
		Address: "1 Main St",
	}
}

func TestCreateClientHandler_Handle_Success(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewCreateClientHandler(repo, memdb.NewTransactionScope())

	id, err := handler.Handle(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a client id")
	}

	clientID, err := domain.ParseClientID(id)
	if err != nil {
		t.Fatalf("expected a parseable client id, got %q", id)
	}
	client, err := repo.FindByID(context.Background(), clientID)
	if err != nil {
		t.Fatalf("expected client to be persisted: %v", err)
	}
	if client.Name() != "John Doe" {
		t.Errorf("expected name 'John Doe', got %q", client.Name())
	}
}

func TestCreateClientHandler_Handle_EmailTaken(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewCreateClientHandler(repo, memdb.NewTransactionScope())

	if _, err := handler.Handle(context.Background(), validCommand()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd := validCommand()
	cmd.Phone = "+14155550999" // same email, different phone

	_, err := handler.Handle(context.Background(), cmd)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreateClientHandler_Handle_PhoneTaken(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	handler := commands.NewCreateClientHandler(repo, memdb.NewTransactionScope())

	if _, err := handler.Handle(context.Background(), validCommand()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd := validCommand()
	cmd.Email = "jane@example.com" // same phone, different email

	_, err := handler.Handle(context.Background(), cmd)
	if !errors.Is(err, domain.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestCreateClientHandler_Handle_InvalidInput(t *testing.T) {
	handler := commands.NewCreateClientHandler(persistence.NewInMemoryRepository(), memdb.NewTransactionScope())

	tests := []struct {
		name    string
		mutate  func(cmd *commands.CreateClientCommand)
		wantErr error
	}{
		{"bad email", func(cmd *commands.CreateClientCommand) { cmd.Email = "not-an-email" }, domain.ErrEmailInvalid},
		{"bad phone", func(cmd *commands.CreateClientCommand) { cmd.Phone = "123" }, domain.ErrPhoneInvalid},
		{"blank name", func(cmd *commands.CreateClientCommand) { cmd.Name = "  " }, domain.ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			_, err := handler.Handle(context.Background(), cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateClientHandler_Handle_KeepOwnContacts(t *testing.T) {
	// Updating a client without changing email or phone must not trip
	// the uniqueness checks against the client's own row.
	repo := persistence.NewInMemoryRepository()
	create := commands.NewCreateClientHandler(repo, memdb.NewTransactionScope())
	update := commands.NewUpdateClientHandler(repo, memdb.NewTransactionScope())

	id, err := create.Handle(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = update.Handle(context.Background(), commands.UpdateClientCommand{
		ClientID: id,
		Name:     "John Q. Doe",
		Email:    "john@example.com",
		Phone:    "+14155550123",
		Address:  "2 Oak Ave",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clientID, _ := domain.ParseClientID(id)
	client, _ := repo.FindByID(context.Background(), clientID)
	if client.Name() != "John Q. Doe" {
		t.Errorf("expected updated name, got %q", client.Name())
	}
	if client.Address() != "2 Oak Ave" {
		t.Errorf("expected updated address, got %q", client.Address())
	}
}

func TestUpdateClientHandler_Handle_EmailTakenByOther(t *testing.T) {
	repo := persistence.NewInMemoryRepository()
	create := commands.NewCreateClientHandler(repo, memdb.NewTransactionScope())
	update := commands.NewUpdateClientHandler(repo, memdb.NewTransactionScope())

	if _, err := create.Handle(context.Background(), validCommand()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := validCommand()
	other.Email = "jane@example.com"
	other.Phone = "+14155550999"
	otherID, err := create.Handle(context.Background(), other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = update.Handle(context.Background(), commands.UpdateClientCommand{
		ClientID: otherID,
		Name:     "Jane Smith",
		Email:    "john@example.com", // already owned by the first client
		Phone:    "+14155550999",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
