package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"points-exchange/config"
	httpHandler "points-exchange/internal/adapter/http/handler"
	pgStorage "points-exchange/internal/adapter/storage/postgres"
	redisStorage "points-exchange/internal/adapter/storage/redis"
	"points-exchange/internal/core/domain"
	"points-exchange/internal/core/ports"
	"points-exchange/internal/service"
	"points-exchange/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Points Exchange Engine")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	statsRepo := pgStorage.NewStatsRepo(pool)
	offerRepo := pgStorage.NewOfferRepo(pool)
	rateRepo := pgStorage.NewRateRepo(pool)
	transactor := pgStorage.NewTransactor(pool, cfg.Database.LockTimeout)

	// Redis-backed caches
	rateCache := redisStorage.NewRateCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	policies := domain.DefaultTierPolicies()
	facilitation := service.FacilitationPolicy{
		SavingsShare: decimal.NewFromFloat(cfg.Engine.FacilitationSavingsShare),
		MinPct:       decimal.NewFromFloat(cfg.Engine.FacilitationMinPct),
		MaxPct:       decimal.NewFromFloat(cfg.Engine.FacilitationMaxPct),
	}

	// Initialize services
	rateResolver := service.NewRateResolver(rateRepo, rateCache, cfg.Engine.RateStaleness, cfg.Engine.RateCacheTTL, log)
	feeCalculator := service.NewFeeCalculator(policies)
	conversionSvc := service.NewConversionService(
		walletRepo, txRepo, statsRepo, rateResolver, feeCalculator,
		policies, transactor, cfg.Engine.ConflictRetries, log,
	)
	walletSvc := service.NewWalletService(walletRepo, transactor, cfg.Engine.ConflictRetries, log)
	tradeSvc := service.NewTradeService(
		offerRepo, walletRepo, rateResolver, facilitation,
		transactor, cfg.Engine.ConflictRetries, log,
	)
	tierSvc := service.NewTierEngine(statsRepo, policies, log)
	rewardSvc := service.NewRewardService()

	// Setup router
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ConversionSvc:  conversionSvc,
		WalletSvc:      walletSvc,
		TradeSvc:       tradeSvc,
		TierSvc:        tierSvc,
		RewardSvc:      rewardSvc,
		RateResolver:   rateResolver,
		RateFeed:       rateRepo,
		TxLog:          txRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
		},
		Logger: log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
