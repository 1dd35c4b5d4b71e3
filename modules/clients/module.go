// Package clients provides client account management.
// This file defines the module's public API - the single interface
// that other modules use to interact with the clients bounded context.
package clients

import (
	"net/http"

	"github.com/rai/commerce-monolith-go/modules/clients/application/commands"
	"github.com/rai/commerce-monolith-go/modules/clients/application/queries"
	"github.com/rai/commerce-monolith-go/modules/clients/domain"
	httphandler "github.com/rai/commerce-monolith-go/modules/clients/infrastructure/http"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// Module is the public API for the clients bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Repository (read-only access for orders)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Repository exposes client lookups to other modules.
	Repository() domain.ClientRepository
}

// Config holds the module configuration.
type Config struct {
	Repository domain.ClientRepository
	TxScope    transaction.Scope
}

// module implements the Module interface.
type module struct {
	repository          domain.ClientRepository
	createClientHandler *commands.CreateClientHandler
	updateClientHandler *commands.UpdateClientHandler
	deleteClientHandler *commands.DeleteClientHandler
	getClientHandler    *queries.GetClientHandler
	listClientsHandler  *queries.ListClientsHandler
}

// New creates a new clients module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		repository:          cfg.Repository,
		createClientHandler: commands.NewCreateClientHandler(cfg.Repository, cfg.TxScope),
		updateClientHandler: commands.NewUpdateClientHandler(cfg.Repository, cfg.TxScope),
		deleteClientHandler: commands.NewDeleteClientHandler(cfg.Repository),
		getClientHandler:    queries.NewGetClientHandler(cfg.Repository),
		listClientsHandler:  queries.NewListClientsHandler(cfg.Repository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.createClientHandler, m.updateClientHandler, m.deleteClientHandler, m.getClientHandler, m.listClientsHandler)
}

func (m *module) Repository() domain.ClientRepository {
	return m.repository
}
