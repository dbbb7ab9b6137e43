package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/router"
	"go-retail-analytics/internal/service"
	"go-retail-analytics/internal/ws"
	"go-retail-analytics/pkg/config"
	"go-retail-analytics/pkg/database"
	"go-retail-analytics/pkg/jwt"
	"go-retail-analytics/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Env
	cfg, foundDotEnv, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	if !foundDotEnv {
		zl.Warn(".env file not found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
	zl.Info("server exited")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// 2. Setup Database
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	// 3. Setup WebSocket Hub
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTExpire)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	sequences, closeSequences, err := newSequenceRepo(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	defer closeSequences()

	authService := service.NewAuthService(userRepo, tokens, log)
	catalogService := service.NewCatalogService(productRepo, db, hub, log)
	saleService := service.NewSaleService(productRepo, saleRepo, sequences, db, hub, log)

	// 5. Seed default admin and align the sale counter
	created, err := authService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Warn("failed to seed admin user", zap.Error(err))
	} else if created {
		log.Info("admin user created", zap.String("email", cfg.AdminEmail))
	}
	if err := saleService.SyncSequence(ctx); err != nil {
		return err
	}

	// 6. Setup Fiber
	app := router.New(router.Deps{
		Log:             log,
		ClientURL:       cfg.ClientURL,
		AccessLog:       !cfg.IsProduction(),
		Hub:             hub,
		UserRepo:        userRepo,
		Tokens:          tokens,
		Auth:            authService,
		Catalog:         catalogService,
		Sales:           saleService,
		Analytics:       service.NewAnalyticsService(productRepo, saleRepo),
		Recommendations: service.NewRecommendationService(productRepo, saleRepo),
	})

	// 7. Graceful Shutdown
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// newSequenceRepo picks the Redis counter when REDIS_URL is set and the
// database sequences table otherwise.
func newSequenceRepo(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) (repository.SequenceRepository, func(), error) {
	if cfg.RedisURL == "" {
		return repository.NewSequenceRepo(db), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Info("sale numbers backed by redis", zap.String("addr", opts.Addr))
	return repository.NewRedisSequenceRepo(client, "retail:seq:"), func() { client.Close() }, nil
}
