package handler

import (
	"points-exchange/internal/adapter/http/middleware"
	redisStore "points-exchange/internal/adapter/storage/redis"
	"points-exchange/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ConversionSvc  ports.ConversionService
	WalletSvc      ports.WalletService
	TradeSvc       ports.TradeService
	TierSvc        ports.TierService
	RewardSvc      ports.RewardService
	RateResolver   ports.RateResolver
	RateFeed       ports.RateFeedStore
	TxLog          ports.TransactionLog
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check verifies PostgreSQL and Redis connectivity
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	conversionHandler := NewConversionHandler(deps.ConversionSvc, deps.TxLog)
	walletHandler := NewWalletHandler(deps.WalletSvc)
	tradeHandler := NewTradeHandler(deps.TradeSvc)
	tierHandler := NewTierHandler(deps.TierSvc, deps.RewardSvc)
	rateHandler := NewRateHandler(deps.RateResolver, deps.RateFeed)
	adminHandler := NewAdminHandler(deps.TradeSvc, deps.TierSvc)

	v1 := r.Group("/api/v1")

	v1.POST("/conversions", rl("conversions"), conversionHandler.Convert)

	users := v1.Group("/users/:id")
	{
		users.GET("/wallets", rl("reads"), walletHandler.ListWallets)
		users.GET("/transactions", rl("reads"), conversionHandler.ListTransactions)
		users.GET("/tier", rl("reads"), tierHandler.GetTierStatus)
	}

	v1.POST("/wallets/topup", rl("topup"), walletHandler.Topup)

	trades := v1.Group("/trades")
	{
		trades.POST("", rl("trades"), tradeHandler.CreateOffer)
		trades.GET("", rl("reads"), tradeHandler.ListOffers)
		trades.POST("/:id/accept", rl("trades"), tradeHandler.AcceptOffer)
		trades.POST("/:id/cancel", rl("trades"), tradeHandler.CancelOffer)
	}

	v1.GET("/rewards/:program", rl("reads"), tierHandler.ValuateRewards)
	v1.GET("/rates", rl("reads"), rateHandler.GetRate)
	v1.GET("/programs", rl("reads"), rateHandler.ListPrograms)

	admin := v1.Group("/admin")
	{
		admin.POST("/sweep-expired", rl("admin"), adminHandler.SweepExpired)
		admin.POST("/rollover", rl("admin"), adminHandler.Rollover)
		admin.POST("/rates", rl("admin"), rateHandler.PublishRate)
	}

	return r
}
