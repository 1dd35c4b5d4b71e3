// Package products provides catalog management and search.
// This file defines the module's public API - the single interface
// that other modules use to interact with the products bounded context.
package products

import (
	"log/slog"
	"net/http"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/products/application/commands"
	"github.com/rai/commerce-monolith-go/modules/products/application/queries"
	"github.com/rai/commerce-monolith-go/modules/products/domain"
	httphandler "github.com/rai/commerce-monolith-go/modules/products/infrastructure/http"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
)

// Module is the public API for the products bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: Repository (read-only access for carts/orders)
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Repository exposes catalog lookups to other modules.
	Repository() domain.ProductRepository
}

// Config holds the module configuration.
type Config struct {
	Repository domain.ProductRepository
	SearchLog  domain.SearchLogRepository
	TxScope    transaction.Scope
	Pool       *worker.Pool
	Logger     *slog.Logger
}

// module implements the Module interface.
type module struct {
	repository            domain.ProductRepository
	createProductHandler  *commands.CreateProductHandler
	updateProductHandler  *commands.UpdateProductHandler
	deleteProductHandler  *commands.DeleteProductHandler
	getProductHandler     *queries.GetProductHandler
	listProductsHandler   *queries.ListProductsHandler
	searchProductsHandler *queries.SearchProductsHandler
	recentSearchesHandler *queries.RecentSearchesHandler
}

// New creates a new products module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		repository:            cfg.Repository,
		createProductHandler:  commands.NewCreateProductHandler(cfg.Repository, cfg.TxScope),
		updateProductHandler:  commands.NewUpdateProductHandler(cfg.Repository, cfg.TxScope),
		deleteProductHandler:  commands.NewDeleteProductHandler(cfg.Repository),
		getProductHandler:     queries.NewGetProductHandler(cfg.Repository),
		listProductsHandler:   queries.NewListProductsHandler(cfg.Repository),
		searchProductsHandler: queries.NewSearchProductsHandler(cfg.Repository, cfg.SearchLog, cfg.Pool, cfg.Logger),
		recentSearchesHandler: queries.NewRecentSearchesHandler(cfg.SearchLog),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(
		mux,
		m.createProductHandler,
		m.updateProductHandler,
		m.deleteProductHandler,
		m.getProductHandler,
		m.listProductsHandler,
		m.searchProductsHandler,
		m.recentSearchesHandler,
	)
}

func (m *module) Repository() domain.ProductRepository {
	return m.repository
}
