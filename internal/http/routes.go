package http

import (
	"context"
	"time"

	"casino_webapp/internal/config"
	"casino_webapp/internal/game"
	"casino_webapp/internal/http/handlers"
	"casino_webapp/internal/http/middleware"
	"casino_webapp/internal/logger"
	"casino_webapp/internal/repository"
	"casino_webapp/internal/rng"
	"casino_webapp/internal/service"
	"casino_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires repositories, services and handlers onto the engine.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	limits := game.Limits{
		MinBet:    cfg.MinBet,
		MaxBet:    cfg.MaxBet,
		MaxProfit: cfg.MaxProfit,
	}
	source := rng.NewCrypto()

	// Malformed paytables are fatal at load, never at draw time
	if err := game.ValidateKenoTables(); err != nil {
		logger.Fatal("keno paytables invalid", "error", err)
	}
	if err := game.ValidatePlinkoTables(); err != nil {
		logger.Fatal("plinko paytables invalid", "error", err)
	}
	if err := game.ValidateWheelTemplates(cfg.RTP); err != nil {
		logger.Fatal("wheel templates invalid", "error", err)
	}

	catalog, err := game.NewCatalog(game.DefaultCatalog())
	if err != nil {
		logger.Fatal("case catalog invalid", "error", err)
	}

	balance := service.NewBalanceService(db)
	historyRepo := repository.NewGameHistoryRepository(db)
	pendingRepo := repository.NewPendingCreditRepository(db)

	// Live results feed
	hub := ws.NewHub()
	go hub.Run()

	// Parked payouts are retried in the background
	reconciler := service.NewReconciler(balance, pendingRepo, time.Minute)
	go reconciler.Run(context.Background())

	rounds := service.NewRoundService(balance, historyRepo, pendingRepo, hub, catalog, limits, cfg.RTP, source)
	mines := service.NewMinesService(balance, historyRepo, pendingRepo, limits, cfg.RTP, source)
	coinflip := service.NewCoinFlipService(balance, historyRepo, pendingRepo, limits, cfg.RTP, source)
	crash := service.NewCrashService(balance, historyRepo, pendingRepo, limits, source)

	h := handlers.NewHandler(db, balance, rounds, mines, coinflip, crash, cfg.StartBalance)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, time.Duration(cfg.GameRateWindow)*time.Second)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	{
		// Auth
		v1.POST("/auth", h.Auth)

		// User
		v1.GET("/me", middleware.JWT(), h.Me)
		v1.GET("/me/games", middleware.JWT(), h.MyGames)
		v1.GET("/me/transactions", middleware.JWT(), h.MyTransactions)

		// Shared game info
		v1.GET("/game/limits", h.GameLimits)

		// One-shot games
		v1.POST("/game/dice", middleware.JWT(), gameRL, h.Dice)
		v1.GET("/game/dice/info", h.DiceInfo)
		v1.POST("/game/limbo", middleware.JWT(), gameRL, h.Limbo)
		v1.GET("/game/limbo/info", h.LimboInfo)
		v1.POST("/game/keno", middleware.JWT(), gameRL, h.Keno)
		v1.GET("/game/keno/info", h.KenoInfo)
		v1.POST("/game/wheel", middleware.JWT(), gameRL, h.Wheel)
		v1.GET("/game/wheel/info", h.WheelInfo)
		v1.POST("/game/plinko", middleware.JWT(), gameRL, h.Plinko)
		v1.GET("/game/plinko/info", h.PlinkoInfo)
		v1.POST("/game/roulette", middleware.JWT(), gameRL, h.Roulette)

		// Cases
		v1.GET("/game/cases", h.Cases)
		v1.POST("/game/cases/open", middleware.JWT(), gameRL, h.CaseOpen)

		// Mines (multi-step)
		v1.POST("/game/mines/start", middleware.JWT(), gameRL, h.MinesStart)
		v1.POST("/game/mines/reveal", middleware.JWT(), gameRL, h.MinesReveal)
		v1.POST("/game/mines/cashout", middleware.JWT(), h.MinesCashOut)
		v1.GET("/game/mines/state", middleware.JWT(), h.MinesState)
		v1.GET("/game/mines/info", h.MinesInfo)

		// CoinFlip (multi-step)
		v1.POST("/game/coinflip/start", middleware.JWT(), gameRL, h.CoinFlipStart)
		v1.POST("/game/coinflip/flip", middleware.JWT(), gameRL, h.CoinFlipGuess)
		v1.POST("/game/coinflip/cashout", middleware.JWT(), h.CoinFlipCashOut)
		v1.GET("/game/coinflip/state", middleware.JWT(), h.CoinFlipState)
		v1.GET("/game/coinflip/info", h.CoinFlipInfo)

		// Crash (multi-step)
		v1.POST("/game/crash/start", middleware.JWT(), gameRL, h.CrashStart)
		v1.POST("/game/crash/cashout", middleware.JWT(), h.CrashCashOut)
		v1.GET("/game/crash/state", middleware.JWT(), h.CrashState)
	}

	// WebSocket feed of settled rounds
	r.GET("/ws/feed", h.Feed(hub))
}
