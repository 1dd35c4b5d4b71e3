// Package main is the entry point for the commerce modular monolith.
// It wires storage, the event infrastructure, the worker pool and all
// modules together and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rai/commerce-monolith-go/internal/platform/config"
	"github.com/rai/commerce-monolith-go/internal/platform/eventbus"
	"github.com/rai/commerce-monolith-go/internal/platform/httpserver"
	"github.com/rai/commerce-monolith-go/internal/platform/memdb"
	platformspanner "github.com/rai/commerce-monolith-go/internal/platform/spanner"
	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/apilog"
	apilogdomain "github.com/rai/commerce-monolith-go/modules/apilog/domain"
	apilogpersistence "github.com/rai/commerce-monolith-go/modules/apilog/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/carts"
	cartsdomain "github.com/rai/commerce-monolith-go/modules/carts/domain"
	cartsacl "github.com/rai/commerce-monolith-go/modules/carts/infrastructure/acl"
	cartspersistence "github.com/rai/commerce-monolith-go/modules/carts/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/clients"
	clientsdomain "github.com/rai/commerce-monolith-go/modules/clients/domain"
	clientspersistence "github.com/rai/commerce-monolith-go/modules/clients/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/notifications"
	notificationsdomain "github.com/rai/commerce-monolith-go/modules/notifications/domain"
	"github.com/rai/commerce-monolith-go/modules/notifications/infrastructure/mail"
	"github.com/rai/commerce-monolith-go/modules/orders"
	ordersdomain "github.com/rai/commerce-monolith-go/modules/orders/domain"
	ordersacl "github.com/rai/commerce-monolith-go/modules/orders/infrastructure/acl"
	"github.com/rai/commerce-monolith-go/modules/orders/infrastructure/crypto"
	orderspersistence "github.com/rai/commerce-monolith-go/modules/orders/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/products"
	productsdomain "github.com/rai/commerce-monolith-go/modules/products/domain"
	productspersistence "github.com/rai/commerce-monolith-go/modules/products/infrastructure/persistence"
	"github.com/rai/commerce-monolith-go/modules/shared/chance"
	"github.com/rai/commerce-monolith-go/modules/shared/transaction"
	"github.com/rai/commerce-monolith-go/modules/tokenization"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting commerce monolith")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	encryptor, err := crypto.NewEncryptor([]byte(cfg.Security.CardAESKey))
	if err != nil {
		logger.Error("failed to initialize card encryptor", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := buildStorage(ctx, cfg, encryptor, logger)
	if err != nil {
		logger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.close()

	pool := worker.NewPool(cfg.Worker.PoolSize, cfg.Worker.QueueSize, logger)

	// Registry holds all event subscriptions; the bus dispatches
	// post-commit events through it, the transactional publisher
	// in-transaction events.
	registry := eventbus.NewEventHandlerRegistry(logger)
	bus := eventbus.New(registry, logger)

	tokenizationModule := tokenization.New(tokenization.Config{
		SecretKey: cfg.Tokenization.SecretKey,
		Rejector:  chance.NewRejector(cfg.Tokenization.RejectionProbability),
	})

	clientsModule := clients.New(clients.Config{
		Repository: store.clients,
		TxScope:    store.txScope,
	})

	productsModule := products.New(products.Config{
		Repository: store.products,
		SearchLog:  store.searchLog,
		TxScope:    store.txScope,
		Pool:       pool,
		Logger:     logger,
	})

	catalog := cartsacl.NewProductCatalog(store.products)

	cartsModule := carts.New(carts.Config{
		Repository: store.carts,
		Catalog:    catalog,
		Clients:    cartsacl.NewClientDirectory(store.clients),
		TxScope:    store.txScope,
	})

	ordersModule := orders.New(orders.Config{
		Gate:          tokenizationModule.Gate(),
		Orders:        store.orders,
		Cards:         store.cards,
		Clients:       ordersacl.NewClientDirectory(store.clients),
		Carts:         ordersacl.NewCartSource(store.carts, catalog),
		TxScope:       store.txScope,
		Registry:      registry,
		Bus:           bus,
		Pool:          pool,
		PaymentReject: chance.NewRejector(cfg.Payment.RejectionProbability),
		MaxRetries:    cfg.Payment.MaxRetries,
		Logger:        logger,
	})

	apilogModule := apilog.New(apilog.Config{
		Repository: store.apiLogs,
		Pool:       pool,
		Logger:     logger,
	})

	if _, err := notifications.New(notifications.Config{
		Mailer:     buildMailer(cfg, logger),
		Subscriber: registry,
		Logger:     logger,
	}); err != nil {
		logger.Error("failed to initialize notifications", slog.Any("error", err))
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	tokenizationModule.RegisterRoutes(mux)
	clientsModule.RegisterRoutes(mux)
	productsModule.RegisterRoutes(mux)
	cartsModule.RegisterRoutes(mux)
	ordersModule.RegisterRoutes(mux)
	apilogModule.RegisterRoutes(mux)

	middlewares := []httpserver.Middleware{
		httpserver.Recovery(logger),
		httpserver.Logging(logger),
	}
	if cfg.Security.APIKey != "" {
		key := cfg.Security.APIKey
		middlewares = append(middlewares, httpserver.APIKeyAuth(func(presented string) bool {
			return presented == key
		}))
	}
	middlewares = append(middlewares, httpserver.RequestAudit(func(entry httpserver.AuditEntry) {
		apilogModule.Record(entry.Method, entry.Path, entry.Status, entry.RequestBody, entry.ResponseBody)
	}))

	handler := httpserver.Chain(mux, middlewares...)

	server := httpserver.New(httpserver.Config{
		Host: cfg.HTTP.Host,
		Port: cfg.HTTP.Port,
	}, handler, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Drain in-flight payments and audit writes before closing storage.
	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Error("worker pool shutdown error", slog.Any("error", err))
	}

	logger.Info("stopped")
}

// storage bundles the repositories and transaction scope for the chosen
// storage driver.
type storage struct {
	txScope   transaction.Scope
	clients   clientsdomain.ClientRepository
	products  productsdomain.ProductRepository
	searchLog productsdomain.SearchLogRepository
	carts     cartsdomain.CartRepository
	orders    ordersdomain.OrderRepository
	cards     ordersdomain.CardRepository
	apiLogs   apilogdomain.Repository
	close     func()
}

func buildStorage(ctx context.Context, cfg *config.Config, encryptor *crypto.Encryptor, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSpanner:
		spannerCfg := platformspanner.Config{
			ProjectID:  cfg.Storage.ProjectID,
			InstanceID: cfg.Storage.InstanceID,
			DatabaseID: cfg.Storage.DatabaseID,
		}
		client, err := platformspanner.NewClient(ctx, spannerCfg)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to spanner", slog.String("dsn", spannerCfg.DSN()))

		return &storage{
			txScope:   platformspanner.NewReadWriteTransactionScope(client),
			clients:   clientspersistence.NewSpannerRepository(client),
			products:  productspersistence.NewSpannerRepository(client),
			searchLog: productspersistence.NewSpannerSearchLog(client),
			carts:     cartspersistence.NewSpannerRepository(client),
			orders:    orderspersistence.NewSpannerRepository(client),
			cards:     orderspersistence.NewSpannerCardRepository(client, encryptor),
			apiLogs:   apilogpersistence.NewSpannerRepository(client),
			close:     client.Close,
		}, nil

	default:
		logger.Info("using in-memory storage")

		return &storage{
			txScope:   memdb.NewTransactionScope(),
			clients:   clientspersistence.NewInMemoryRepository(),
			products:  productspersistence.NewInMemoryRepository(),
			searchLog: productspersistence.NewInMemorySearchLog(),
			carts:     cartspersistence.NewInMemoryRepository(),
			orders:    orderspersistence.NewInMemoryRepository(),
			cards:     orderspersistence.NewInMemoryCardRepository(encryptor),
			apiLogs:   apilogpersistence.NewInMemoryRepository(),
			close:     func() {},
		}, nil
	}
}

// buildMailer picks SendGrid when an API key is configured and falls
// back to log-only delivery for local development.
func buildMailer(cfg *config.Config, logger *slog.Logger) notificationsdomain.Mailer {
	if cfg.Email.SendGridAPIKey != "" {
		return mail.NewSendGridMailer(cfg.Email.SendGridAPIKey, cfg.Email.SenderAddress, cfg.Email.SenderAlias, logger)
	}
	return mail.NewLogMailer(logger)
}
