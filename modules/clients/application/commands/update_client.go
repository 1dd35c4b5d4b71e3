package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/clients/domain"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// UpdateClientCommand replaces a client's profile details.
type UpdateClientCommand struct {
	ClientID string
	Name     string
	Email    string
	Phone    string
	Address  string
}

type UpdateClientHandler struct {
	repo    domain.ClientRepository
	txScope transaction.Scope
}

func NewUpdateClientHandler(repo domain.ClientRepository, txScope transaction.Scope) *UpdateClientHandler {
	return &UpdateClientHandler{repo: repo, txScope: txScope}
}

func (h *UpdateClientHandler) Handle(ctx context.Context, cmd UpdateClientCommand) error {
	clientID, err := domain.ParseClientID(cmd.ClientID)
	if err != nil {
		return fmt.Errorf("invalid client ID: %w", err)
	}

	email, err := domain.NewEmail(cmd.Email)
	if err != nil {
		return err
	}
	phone, err := domain.NewPhone(cmd.Phone)
	if err != nil {
		return err
	}

	return h.txScope.Execute(ctx, func(ctx context.Context) error {
		client, err := h.repo.FindByID(ctx, clientID)
		if err != nil {
			return fmt.Errorf("finding client: %w", err)
		}

		taken, err := h.repo.EmailInUse(ctx, email, clientID)
		if err != nil {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			return domain.ErrEmailTaken
		}

		taken, err = h.repo.PhoneInUse(ctx, phone, clientID)
		if err != nil {
			return fmt.Errorf("checking phone uniqueness: %w", err)
		}
		if taken {
			return domain.ErrPhoneTaken
		}

		if err := client.UpdateDetails(cmd.Name, email, phone, cmd.Address); err != nil {
			return err
		}

		if err := h.repo.Save(ctx, client); err != nil {
			return fmt.Errorf("saving client: %w", err)
		}

		return nil
	})
}
