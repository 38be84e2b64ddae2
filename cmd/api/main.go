package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/credential-service/internal/api/http"
	"github.com/spec-kit/credential-service/internal/api/http/handlers"
	"github.com/spec-kit/credential-service/internal/auth"
	"github.com/spec-kit/credential-service/internal/config"
	"github.com/spec-kit/credential-service/internal/observability"
	"github.com/spec-kit/credential-service/internal/persistence"
	"github.com/spec-kit/credential-service/internal/repository"
	"github.com/spec-kit/credential-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	directory, cleanup, err := buildDirectory(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build user directory", zap.Error(err))
	}
	defer cleanup()

	authService := service.NewAuthService(cfg.Auth, directory)
	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, directory),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// buildDirectory selects the user directory backend. Postgres when a DSN is
// configured, Redis when requested, otherwise the volatile in-memory store.
func buildDirectory(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserDirectory, func(), error) {
	backend := cfg.Store.Backend
	if backend == "memory" && cfg.Postgres.DSN != "" {
		backend = "postgres"
	}

	switch backend {
	case "postgres":
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresDirectory(pg.Pool), pg.Close, nil
	case "redis":
		rd, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisDirectory(rd.Client), rd.Close, nil
	default:
		logger.Warn("using volatile in-memory user directory; records are lost on restart")
		return repository.NewMemoryDirectory(), func() {}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
