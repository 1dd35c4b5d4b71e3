// Package apilog records every API exchange for auditing.
package apilog

import (
	"log/slog"
	"net/http"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/apilog/application"
	"github.com/rai/commerce-monolith-go/modules/apilog/domain"
	httphandler "github.com/rai/commerce-monolith-go/modules/apilog/infrastructure/http"
)

// Module is the public API for the apilog bounded context.
type Module interface {
	// RegisterRoutes registers the module's HTTP routes to the given mux.
	RegisterRoutes(mux *http.ServeMux)

	// Record captures one request/response exchange. Wired into the
	// server's audit middleware.
	Record(method, path string, status int, requestBody, responseBody string)
}

// Config holds the module configuration.
type Config struct {
	Repository domain.Repository
	Pool       *worker.Pool
	Logger     *slog.Logger
}

// module implements the Module interface.
type module struct {
	recorder        *application.Recorder
	listLogsHandler *application.ListLogsHandler
}

// New creates a new apilog module with all dependencies wired.
func New(cfg Config) Module {
	return &module{
		recorder:        application.NewRecorder(cfg.Repository, cfg.Pool, cfg.Logger),
		listLogsHandler: application.NewListLogsHandler(cfg.Repository),
	}
}

func (m *module) RegisterRoutes(mux *http.ServeMux) {
	httphandler.RegisterRoutes(mux, m.listLogsHandler)
}

func (m *module) Record(method, path string, status int, requestBody, responseBody string) {
	m.recorder.Record(method, path, status, requestBody, responseBody)
}
