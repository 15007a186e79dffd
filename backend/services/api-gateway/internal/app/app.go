package app

import (
	"context"

	"go.uber.org/zap"

	"meterdesk/backend/services/api-gateway/internal/clients"
	"meterdesk/backend/services/api-gateway/internal/config"
	httpserver "meterdesk/backend/services/api-gateway/internal/http"
	"meterdesk/backend/services/api-gateway/internal/http/handlers"
	"meterdesk/backend/services/api-gateway/internal/http/middleware"
)

// App wires API gateway dependencies.
type App struct {
	server *httpserver.Server
	logger *zap.Logger
}

// New constructs application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	httpClient := clients.NewDefaultHTTPClient(cfg.HTTPTimeout())

	authClient := clients.NewAuthClient(cfg.Services.AuthURL, httpClient)
	billingClient := clients.NewBillingClient(cfg.Services.BillingURL, httpClient)

	liveProxy, err := handlers.NewLiveProxy(cfg.Services.BillingURL, logger)
	if err != nil {
		return nil, err
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandlers:    handlers.NewAuthHandlers(authClient, logger),
		BillingHandlers: handlers.NewBillingHandlers(billingClient, logger),
		LiveProxy:       liveProxy,
		HealthHandler:   handlers.NewHealthHandler(),
	}, middleware.AuthMiddleware(cfg.JWT.Secret))

	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}
