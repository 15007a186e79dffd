package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	appconfig "meterdesk/backend/services/auth-service/internal/config"
	"meterdesk/backend/services/auth-service/internal/db"
	httpserver "meterdesk/backend/services/auth-service/internal/http"
	"meterdesk/backend/services/auth-service/internal/http/handlers"
	"meterdesk/backend/services/auth-service/internal/models"
	"meterdesk/backend/services/auth-service/internal/password"
	"meterdesk/backend/services/auth-service/internal/repository"
	"meterdesk/backend/services/auth-service/internal/service"
)

// App wires dependencies for the auth service.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	logger *zap.Logger
}

// New builds application graph.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}
	hasher := password.NewBcryptHasher(0)

	var users service.UserRepository
	userSource := "static"
	if cfg.Database.DSN != "" {
		sqlDB, err := db.NewPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.db = sqlDB
		users = repository.NewUserRepository(sqlDB)
		userSource = "postgres"
	} else {
		hash, err := hasher.Hash(cfg.Admin.Password)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		users = repository.NewStaticUserRepository(models.User{
			ID:           1,
			Email:        cfg.Admin.Email,
			PasswordHash: hash,
			Role:         "admin",
			CreatedAt:    time.Now().UTC(),
		})
		logger.Info("no database configured, serving the configured admin only", zap.String("email", cfg.Admin.Email))
	}

	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(users, hasher, tokenSvc, logger)

	routes := httpserver.Routes{
		Login:   handlers.NewLoginHandler(authSvc, logger),
		Session: handlers.NewSessionHandler(authSvc),
		Health:  handlers.NewHealthHandler(userSource),
	}

	router := httpserver.NewRouter(routes)
	a.server = httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		httpserver.RecoveryMiddleware(logger),
		httpserver.LoggingMiddleware(logger),
	)
	return a, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
