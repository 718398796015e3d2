package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/painting-service/internal/api/http"
	"github.com/spec-kit/painting-service/internal/api/http/handlers"
	"github.com/spec-kit/painting-service/internal/auth"
	"github.com/spec-kit/painting-service/internal/config"
	"github.com/spec-kit/painting-service/internal/limiter"
	"github.com/spec-kit/painting-service/internal/observability"
	"github.com/spec-kit/painting-service/internal/persistence"
	"github.com/spec-kit/painting-service/internal/repository"
	"github.com/spec-kit/painting-service/internal/service"
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

	var userRepo repository.UserRepository
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pool)
	} else {
		logger.Warn("running with in-memory user store; records are not durable")
		userRepo = repository.NewMemoryUserRepository()
	}

	lim := limiter.Limiter(limiter.NewNoop())
	var redisConn *persistence.Redis
	if cfg.Redis.Addr != "" {
		redisConn, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisConn.Close()
		lim = limiter.NewRedisLimiter(redisConn.Handle(), cfg.Throttle)
	}

	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(cfg.Auth, userRepo, lim)
	paintingService := service.NewPaintingService(userRepo)
	authMiddleware := auth.NewMiddleware(tokenMgr, userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisConn),
		Auth:           handlers.NewAuthHandler(authService, tokenMgr),
		Painting:       handlers.NewPaintingHandler(paintingService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
