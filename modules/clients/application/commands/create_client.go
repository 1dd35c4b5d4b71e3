// Package commands contains write use cases for the clients module.
package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/clients/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// CreateClientCommand registers a new client.
type CreateClientCommand struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type CreateClientHandler struct {
	repo    domain.ClientRepository
	txScope transaction.Scope
}

func NewCreateClientHandler(repo domain.ClientRepository, txScope transaction.Scope) *CreateClientHandler {
	return &CreateClientHandler{repo: repo, txScope: txScope}
}

// Handle executes the create client use case.
// Uniqueness checks and the insert run in one transaction so two
// concurrent registrations cannot both claim the same email or phone.
func (h *CreateClientHandler) Handle(ctx context.Context, cmd CreateClientCommand) (string, error) {
	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return "", err
	}
	phone, err := domain.NewPhone(cmd.Phone)
	if err != nil {
		return "", err
	}

	client, err := domain.NewClient(cmd.Name, email, phone, cmd.Address)
	if err != nil {
		return "", err
	}

	return transaction.ExecuteWithResult(ctx, h.txScope, func(ctx context.Context) (string, error) {
		taken, err := h.repo.EmailInUse(ctx, email, domain.ClientID{})
		if err != nil {
			return "", fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			return "", domain.ErrEmailTaken
		}

		taken, err = h.repo.PhoneInUse(ctx, phone, domain.ClientID{})
		if err != nil {
			return "", fmt.Errorf("checking phone uniqueness: %w", err)
		}
		if taken {
			return "", domain.ErrPhoneTaken
		}

		if err := h.repo.Save(ctx, client); err != nil {
			return "", fmt.Errorf("saving client: %w", err)
		}

		return client.ID().String(), nil
	})
}
