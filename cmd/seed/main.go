package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/seed"
	"go-retail-analytics/internal/service"
	"go-retail-analytics/pkg/config"
	"go-retail-analytics/pkg/database"
	"go-retail-analytics/pkg/jwt"
	"go-retail-analytics/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	sales := flag.Int("sales", 250, "number of historical sales to generate")
	days := flag.Int("days", 90, "spread sales over this many past days")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	reset := flag.Bool("reset", false, "delete existing products, sales and counters first")
	flag.Parse()

	// 1. Load Env
	cfg, _, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg, zl)
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *reset {
		if err := seed.Reset(ctx, db); err != nil {
			zl.Fatal("reset", zap.Error(err))
		}
		zl.Info("existing catalog and sales removed")
	}

	// 3. Seed
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	sequences := repository.NewSequenceRepo(db)
	seeder := seed.New(
		db,
		service.NewAuthService(repository.NewUserRepo(db), jwt.NewManager(cfg.JWTSecret, cfg.JWTExpire), zl),
		service.NewCatalogService(productRepo, db, nil, zl),
		service.NewSaleService(productRepo, saleRepo, sequences, db, nil, zl),
		saleRepo,
		sequences,
		zl,
	)

	res, err := seeder.Run(ctx, seed.Options{Sales: *sales, Days: *days, Seed: *seedValue})
	if err != nil {
		zl.Fatal("seed", zap.Error(err))
	}

	zl.Info("database seeded",
		zap.Int("users", res.Users),
		zap.Int("products", res.Products),
		zap.Int("sales", res.Sales),
		zap.Int64("seed", *seedValue),
	)
}
