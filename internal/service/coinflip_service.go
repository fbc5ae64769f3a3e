package service

import (
	"context"
	"sync"
	"time"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/game"
	"casino_webapp/internal/logger"
	"casino_webapp/internal/monitoring"
	"casino_webapp/internal/rng"

	"github.com/google/uuid"
)

// CoinFlipService manages active compounding coinflip rounds.
type CoinFlipService struct {
	settler Settler
	history HistoryRecorder
	pending PendingCreditStore
	limits  game.Limits
	rtp     float64
	rand    rng.Source

	activeGames map[int64]*game.CoinFlipGame // userID -> game
	mu          sync.RWMutex
}

func NewCoinFlipService(settler Settler, history HistoryRecorder, pending PendingCreditStore, limits game.Limits, rtp float64, r rng.Source) *CoinFlipService {
	s := &CoinFlipService{
		settler:     settler,
		history:     history,
		pending:     pending,
		limits:      limits,
		rtp:         rtp,
		rand:        r,
		activeGames: make(map[int64]*game.CoinFlipGame),
	}

	go s.cleanupExpiredGames()

	return s
}

// StartGame debits the bet and opens a new round.
func (s *CoinFlipService) StartGame(ctx context.Context, userID int64, bet int64) (*game.CoinFlipGame, error) {
	if err := game.ValidateWager(bet, s.limits); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.activeGames[userID]; ok && existing.IsActive() {
		return nil, ErrRoundInFlight
	}

	gameID := uuid.New().String()[:8]
	g, err := game.NewCoinFlipGame(gameID, userID, bet, s.rtp)
	if err != nil {
		return nil, err
	}

	meta := map[string]interface{}{"round_id": gameID, "game": string(domain.GameTypeCoinflip)}
	if _, err := s.settler.Debit(ctx, userID, bet, TxTypeBet, meta); err != nil {
		return nil, err
	}

	s.activeGames[userID] = g
	return g, nil
}

// GetActiveGame returns user's active game, or nil.
func (s *CoinFlipService) GetActiveGame(userID int64) *game.CoinFlipGame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.activeGames[userID]
	if !ok || !g.IsActive() {
		return nil
	}
	return g
}

// Flip plays one guess. A wrong guess ends the round; hitting the streak cap
// cashes out automatically.
func (s *CoinFlipService) Flip(ctx context.Context, userID int64, guess string) (side string, win bool, g *game.CoinFlipGame, err error) {
	s.mu.RLock()
	g, ok := s.activeGames[userID]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil, game.ErrGameNotActive
	}

	side, win, err = g.Flip(guess, s.rand)
	if err != nil {
		return "", false, g, err
	}

	if !g.IsActive() {
		s.mu.Lock()
		delete(s.activeGames, userID)
		s.mu.Unlock()

		s.finish(ctx, g)
	}

	return side, win, g, nil
}

// CashOut settles user's active game at the compounded multiplier.
func (s *CoinFlipService) CashOut(ctx context.Context, userID int64) (*game.CoinFlipGame, error) {
	s.mu.RLock()
	g, ok := s.activeGames[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, game.ErrGameNotActive
	}

	if _, err := g.CashOut(); err != nil {
		return g, err
	}

	s.mu.Lock()
	delete(s.activeGames, userID)
	s.mu.Unlock()

	s.finish(ctx, g)
	return g, nil
}

func (s *CoinFlipService) finish(ctx context.Context, g *game.CoinFlipGame) {
	g.WinAmount = s.limits.CapProfit(g.Bet, g.WinAmount)

	meta := map[string]interface{}{"round_id": g.ID, "game": string(domain.GameTypeCoinflip)}
	if g.WinAmount > 0 {
		creditPayout(ctx, s.settler, s.pending, g.UserID, g.ID, g.WinAmount, meta, 0)
	}

	result := domain.GameResultLose
	if g.WinAmount > 0 {
		result = domain.GameResultWin
	}
	monitoring.RecordRound(string(domain.GameTypeCoinflip), string(result), g.Bet, g.WinAmount)

	if s.history != nil {
		gh := &domain.GameHistory{
			UserID:    g.UserID,
			GameType:  domain.GameTypeCoinflip,
			Result:    result,
			BetAmount: g.Bet,
			WinAmount: g.WinAmount,
			Details:   g.State(),
		}
		if err := s.history.Create(ctx, gh); err != nil {
			logger.Error("game history write failed", "user_id", g.UserID, "game", "coinflip", "error", err)
		}
	}
}

func (s *CoinFlipService) cleanupExpiredGames() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for userID, g := range s.activeGames {
			if now.Sub(g.CreatedAt) > time.Hour {
				delete(s.activeGames, userID)
				logger.Warn("abandoned coinflip game dropped", "user_id", userID, "round_id", g.ID)
			}
		}
		s.mu.Unlock()
	}
}
