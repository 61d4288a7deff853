package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tenant-platform/internal/api/http"
	"github.com/spec-kit/tenant-platform/internal/api/http/handlers"
	"github.com/spec-kit/tenant-platform/internal/auth"
	"github.com/spec-kit/tenant-platform/internal/config"
	"github.com/spec-kit/tenant-platform/internal/events"
	"github.com/spec-kit/tenant-platform/internal/observability"
	"github.com/spec-kit/tenant-platform/internal/persistence"
	"github.com/spec-kit/tenant-platform/internal/repository"
	"github.com/spec-kit/tenant-platform/internal/service"
	"github.com/spec-kit/tenant-platform/internal/tenant"
	"github.com/spec-kit/tenant-platform/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	tenantRepo := repository.NewTenantRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	resolver := tenant.NewResolver(cfg.Tenant.RootDomain, cfg.Tenant.PreviewDomain)
	directory := tenant.NewDirectory(tenantRepo, redis.Client, logger)
	if err := directory.Refresh(ctx); err != nil {
		logger.Warn("initial tenant directory load failed", zap.Error(err))
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Dispatcher:  dispatcher,
	})
	tenantService := service.NewTenantService(tenantRepo, userRepo, directory, dispatcher, logger)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)

	worker.StartNotificationWorker(notificationService)

	gateway := auth.NewGateway(authService.TokenManager(), cfg.Auth.SecureCookies)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Env, pg, redis),
		Auth:          handlers.NewAuthHandler(authService, cfg.Auth.SecureCookies),
		Tenants:       handlers.NewTenantHandler(tenantService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Gateway:       gateway,
		Resolver:      resolver,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
