package app

import (
	"context"
	"database/sql"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "meterdesk/backend/libs/redis"
	"meterdesk/backend/services/billing-service/internal/config"
	"meterdesk/backend/services/billing-service/internal/db"
	httpserver "meterdesk/backend/services/billing-service/internal/http"
	"meterdesk/backend/services/billing-service/internal/http/handlers"
	redisstore "meterdesk/backend/services/billing-service/internal/redis"
	"meterdesk/backend/services/billing-service/internal/repository"
	"meterdesk/backend/services/billing-service/internal/service"
	"meterdesk/backend/services/billing-service/internal/ws"
)

// App wires billing service dependencies.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New constructs application graph. Postgres and Redis are optional: without them the
// service falls back to the configured default tariff and in-memory number reservations.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	var tariffRepo service.TariffRepository
	if cfg.Database.DSN != "" {
		sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.db = sqlDB
		tariffRepo = repository.NewTariffRepository(sqlDB)
	} else {
		logger.Info("no database configured, using default tariff", zap.String("rate", cfg.Invoice.DefaultRate.String()))
	}

	var reserver service.NumberReserver
	if cfg.Redis.Addr != "" {
		client, err := libredis.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		reserver = redisstore.NewInvoiceNumberStore(client)
	} else {
		logger.Info("no redis configured, invoice numbers are reserved in memory")
		reserver = service.NewMemoryReserver()
	}

	tariffService := service.NewTariffService(tariffRepo, cfg.Invoice.DefaultRate, logger)
	numbers := service.NewNumberAllocator(cfg.Invoice.Prefix, cfg.NumberTTL(), reserver)
	invoiceService := service.NewInvoiceService(tariffService, numbers, service.InvoiceOptions{
		Company:  cfg.Invoice.CompanyName,
		Currency: cfg.Invoice.Currency,
	}, logger)

	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceService, logger)
	liveServer := ws.NewServer(ws.NewQuoteProcessor(invoiceService, logger), cfg.LiveWriteTimeout(), logger)

	router := httpserver.NewRouter(httpserver.Routes{
		Quote:   handlers.NewQuoteHandler(invoiceService, logger),
		Issue:   invoiceHandlers.Issue,
		PDF:     invoiceHandlers.PDF,
		Live:    liveServer.HandleLive,
		Health:  handlers.NewHealthHandler(),
		Metrics: promhttp.Handler(),
	})

	a.server = httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		httpserver.RecoveryMiddleware(logger),
		httpserver.LoggingMiddleware(logger),
	)
	a.server.RegisterOnShutdown(liveServer.Close)
	return a, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
