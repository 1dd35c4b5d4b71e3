// Package orders provides order placement and asynchronous payment.
// This file defines the module's public API - the single interface
// that other modules use to interact with the orders bounded context.
package orders

import (
	"log/slog"
	"net/http"

	"github.com/rai/commerce-monolith-go/internal/platform/eventbus"
	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/orders/application/commands"
	"github.com/rai/commerce-monolith-go/modules/orders/application/payment"
	"github.com/rai/commerce-monolith-go/modules/orders/application/queries"
	"github.com/rai/commerce-monolith-go/modules/orders/domain"
	httphandler "github.com/rai/commerce-monolith-go/modules/orders/infrastructure/http"
	"github.com/rai/commerce-monolith-go/modules/shared/chance"
	"github.com/rai/commerce-monolith-go/modules/shared/events"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
	tokendomain "github.com/rai/commerce-monolith-go/modules/tokenization/domain"
)

// Module is the public API for the orders bounded context.
// External communication: HTTP API (RegisterRoutes)
// Cross-module communication: settlement events on the event bus
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
}

// Config holds the module configuration.
type Config struct {
	Gate          tokendomain.Gate
	Orders        domain.OrderRepository
	Cards         domain.CardRepository
	Clients       domain.ClientDirectory
	Carts         domain.CartSource
	TxScope       transaction.Scope
	Registry      eventbus.HandlerRegistry // in-transaction dispatch for OrderPlacedEvent
	Bus           events.Publisher         // post-commit, for settlement events
	Pool          *worker.Pool
	PaymentReject chance.Rejector
	MaxRetries    int
	Logger        *slog.Logger
}

// module implements the Module interface.
type module struct {
	placeOrderHandler       *commands.PlaceOrderHandler
	getOrderHandler         *queries.GetOrderHandler
	listClientOrdersHandler *queries.ListClientOrdersHandler
	processor               *payment.Processor
}

// New creates a new orders module with all dependencies wired.
func New(cfg Config) Module {
	processor := payment.NewProcessor(
		cfg.Orders,
		cfg.Clients,
		cfg.TxScope,
		cfg.PaymentReject,
		cfg.MaxRetries,
		cfg.Bus,
		cfg.Pool,
		cfg.Logger,
	)

	return &module{
		placeOrderHandler: commands.NewPlaceOrderHandler(
			cfg.Gate,
			cfg.Orders,
			cfg.Cards,
			cfg.Clients,
			cfg.Carts,
			cfg.TxScope,
			cfg.Registry,
			processor,
		),
		getOrderHandler:         queries.NewGetOrderHandler(cfg.Orders),
		listClientOrdersHandler: queries.NewListClientOrdersHandler(cfg.Orders, cfg.Clients),
		processor:               processor,
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.placeOrderHandler, m.getOrderHandler, m.listClientOrdersHandler)
}
