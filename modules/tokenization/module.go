// Package tokenization provides card tokenization.
// This is the public API for the tokenization bounded context.
package tokenization

import (
	"net/http"

	"github.com/rai/commerce-monolith-go/modules/shared/chance"
	"github.com/rai/commerce-monolith-go/modules/tokenization/domain"
	httphandler "github.com/rai/commerce-monolith-go/modules/tokenization/infrastructure/http"
)

// Module is the tokenization module entry point.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)
	// Gate exposes the tokenization gate for the orders module.
	Gate() domain.Gate
}

// Config holds the module configuration.
type Config struct {
	SecretKey string
	Rejector  chance.Rejector
}

type module struct {
	gate domain.Gate
}

// New creates a new tokenization module.
func New(cfg Config) Module {
	rejector := cfg.Rejector
	if rejector == nil {
		rejector = chance.Never()
	}
	return &module{gate: domain.NewHMACGate(cfg.SecretKey, rejector)}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.gate)
}

func (m *module) Gate() domain.Gate {
	return m.gate
}
