package handlers

import (
	"errors"
	"net/http"

	"casino_webapp/internal/game"
	"casino_webapp/internal/repository"
	"casino_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB              *pgxpool.Pool
	UserRepo        *repository.UserRepository
	GameHistoryRepo *repository.GameHistoryRepository
	Balance         *service.BalanceService
	Rounds          *service.RoundService
	Mines           *service.MinesService
	CoinFlip        *service.CoinFlipService
	Crash           *service.CrashService

	StartBalance int64
}

func NewHandler(
	db *pgxpool.Pool,
	balance *service.BalanceService,
	rounds *service.RoundService,
	mines *service.MinesService,
	coinflip *service.CoinFlipService,
	crash *service.CrashService,
	startBalance int64,
) *Handler {
	return &Handler{
		DB:              db,
		UserRepo:        repository.NewUserRepository(db),
		GameHistoryRepo: repository.NewGameHistoryRepository(db),
		Balance:         balance,
		Rounds:          rounds,
		Mines:           mines,
		CoinFlip:        coinflip,
		Crash:           crash,
		StartBalance:    startBalance,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// gameError maps engine errors to HTTP responses.
func gameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRoundInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInvalidWagerAmount),
		errors.Is(err, game.ErrInvalidDiceTarget),
		errors.Is(err, game.ErrInvalidLimboTarget),
		errors.Is(err, game.ErrInvalidMinesCount),
		errors.Is(err, game.ErrInvalidRisk),
		errors.Is(err, game.ErrInvalidKenoPicks),
		errors.Is(err, game.ErrInvalidWheelSegments),
		errors.Is(err, game.ErrInvalidPlinkoRows),
		errors.Is(err, game.ErrInvalidCoinSide),
		errors.Is(err, game.ErrNoRouletteBets),
		errors.Is(err, game.ErrInvalidRouletteSpot),
		errors.Is(err, game.ErrInvalidRouletteNumber),
		errors.Is(err, game.ErrUnknownCase),
		errors.Is(err, game.ErrInvalidOpenCount),
		errors.Is(err, game.ErrCellOutOfRange),
		errors.Is(err, game.ErrCellRevealed),
		errors.Is(err, game.ErrNothingToCashOut):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrGameNotActive):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
