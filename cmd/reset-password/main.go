package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go-retail-analytics/internal/repository"
	"go-retail-analytics/internal/service"
	"go-retail-analytics/pkg/config"
	"go-retail-analytics/pkg/database"
	"go-retail-analytics/pkg/jwt"
	"go-retail-analytics/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new password (at least 6 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("both -email and -password are required")
	}

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

	// 3. Reset
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := service.NewAuthService(repository.NewUserRepo(db), jwt.NewManager(cfg.JWTSecret, cfg.JWTExpire), zl)
	if err := auth.ResetPassword(ctx, *email, *password); err != nil {
		zl.Fatal("reset password", zap.String("email", *email), zap.Error(err))
	}

	zl.Info("password reset", zap.String("email", *email))
}
