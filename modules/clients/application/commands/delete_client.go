package commands

import (
	"context"
	"fmt"

	"github.com/rai/commerce-monolith-go/modules/clients/domain"
)

// DeleteClientCommand removes a client.
type DeleteClientCommand struct {
	ClientID string
}

type DeleteClientHandler struct {
	repo domain.ClientRepository
}

func NewDeleteClientHandler(repo domain.ClientRepository) *DeleteClientHandler {
	return &DeleteClientHandler{repo: repo}
}

func (h *DeleteClientHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
	clientID, err := domain.ParseClientID(cmd.ClientID)
	if err != nil {
		return fmt.Errorf("invalid client ID: %w", err)
	}

	if _, err := h.repo.FindByID(ctx, clientID); err != nil {
		return fmt.Errorf("finding client: %w", err)
	}

	if err := h.repo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
