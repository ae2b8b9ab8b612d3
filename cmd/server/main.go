package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/roden1999/money-tracking-app/internal/auth"
	"github.com/roden1999/money-tracking-app/internal/config"
	"github.com/roden1999/money-tracking-app/internal/logger"
	"github.com/roden1999/money-tracking-app/internal/rates"
	"github.com/roden1999/money-tracking-app/internal/service"
	"github.com/roden1999/money-tracking-app/internal/store/factory"
	httptransport "github.com/roden1999/money-tracking-app/internal/transport/http"
)

func main() {
	cfgPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	flag.Parse()

	// 1. load config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	// 2. init logger
	log, err := logger.NewLogger()
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	// 3. persistence backend
	st, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer st.Close()

	// 4. redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	// 5. services
	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLH)*time.Hour)
	rateClient := rates.NewClient(cfg.Rates.BaseURL, rdb, log)

	userSvc := service.NewUserService(st, tokens, log)
	walletSvc := service.NewWalletService(st, rdb, log)
	txSvc := service.NewTransactionService(st, rdb, log)
	dashSvc := service.NewDashboardService(walletSvc, txSvc, rateClient, log)

	// 6. gin router
	router := httptransport.NewRouter(httptransport.Services{
		Users:        userSvc,
		Wallets:      walletSvc,
		Transactions: txSvc,
		Dashboard:    dashSvc,
		Rates:        rateClient,
		Tokens:       tokens,
	}, cfg.RateLimit, log)

	// 7. serve
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Infof("money-tracking server listening on %s (backend=%s)", addr, cfg.Backend)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
