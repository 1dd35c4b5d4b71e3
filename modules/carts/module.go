// Package carts provides cart aggregation: accumulating product lines
// per client until an order consumes them.
package carts

import (
	"net/http"

	"github.com/rai/commerce-monolith-go/modules/carts/application/commands"
	"github.com/rai/commerce-monolith-go/modules/carts/application/queries"
	"github.com/rai/commerce-monolith-go/modules/carts/domain"
	httphandler "github.com/rai/commerce-monolith-go/modules/carts/infrastructure/http"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// Module is the public API for the carts bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Repository (orders consume the cart)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Repository exposes cart access to the orders module.
	Repository() domain.CartRepository
}

// Config holds the module configuration.
type Config struct {
	Repository domain.CartRepository
	Catalog    domain.Catalog
	Clients    domain.ClientDirectory
	TxScope    transaction.Scope
}

// module implements the Module interface.
type module struct {
	repository           domain.CartRepository
	addProductHandler    *commands.AddProductHandler
	removeProductHandler *commands.RemoveProductHandler
	clearCartHandler     *commands.ClearCartHandler
	getCartHandler       *queries.GetCartHandler
}

// New creates a new carts module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		repository:           cfg.Repository,
		addProductHandler:    commands.NewAddProductHandler(cfg.Repository, cfg.Catalog, cfg.Clients, cfg.TxScope),
		removeProductHandler: commands.NewRemoveProductHandler(cfg.Repository, cfg.TxScope),
		clearCartHandler:     commands.NewClearCartHandler(cfg.Repository, cfg.TxScope),
		getCartHandler:       queries.NewGetCartHandler(cfg.Repository, cfg.Catalog),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.addProductHandler, m.removeProductHandler, m.clearCartHandler, m.getCartHandler)
}

func (m *module) Repository() domain.CartRepository {
	return m.repository
}
