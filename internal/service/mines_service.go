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

// MinesService manages active mines rounds. The stake is debited at start;
// the cashout (manual or automatic) credits the winnings.
type MinesService struct {
	settler Settler
	history HistoryRecorder
	pending PendingCreditStore
	limits  game.Limits
	rtp     float64
	rand    rng.Source

	activeGames map[int64]*game.MinesGame // userID -> game
	mu          sync.RWMutex
}

func NewMinesService(settler Settler, history HistoryRecorder, pending PendingCreditStore, limits game.Limits, rtp float64, r rng.Source) *MinesService {
	s := &MinesService{
		settler:     settler,
		history:     history,
		pending:     pending,
		limits:      limits,
		rtp:         rtp,
		rand:        r,
		activeGames: make(map[int64]*game.MinesGame),
	}

	go s.cleanupExpiredGames()

	return s
}

// StartGame debits the bet and opens a new round.
func (s *MinesService) StartGame(ctx context.Context, userID int64, bet int64, minesCount int) (*game.MinesGame, error) {
	if err := game.ValidateWager(bet, s.limits); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.activeGames[userID]; ok && existing.IsActive() {
		return nil, ErrRoundInFlight
	}

	gameID := uuid.New().String()[:8]
	g, err := game.NewMinesGame(gameID, userID, bet, minesCount, s.rtp, s.rand)
	if err != nil {
		return nil, err
	}

	meta := map[string]interface{}{"round_id": gameID, "game": string(domain.GameTypeMines)}
	if _, err := s.settler.Debit(ctx, userID, bet, TxTypeBet, meta); err != nil {
		return nil, err
	}

	s.activeGames[userID] = g
	return g, nil
}

// GetActiveGame returns user's active game, or nil.
func (s *MinesService) GetActiveGame(userID int64) *game.MinesGame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.activeGames[userID]
	if !ok || !g.IsActive() {
		return nil
	}
	return g
}

// RevealCell opens a cell in user's active game. A mine ends the round with
// zero payout; opening the last safe cell auto-cashes out.
func (s *MinesService) RevealCell(ctx context.Context, userID int64, cell int) (hitMine bool, g *game.MinesGame, err error) {
	s.mu.RLock()
	g, ok := s.activeGames[userID]
	s.mu.RUnlock()
	if !ok {
		return false, nil, game.ErrGameNotActive
	}

	hitMine, err = g.Reveal(cell)
	if err != nil {
		return false, g, err
	}

	if !g.IsActive() {
		s.mu.Lock()
		delete(s.activeGames, userID)
		s.mu.Unlock()

		s.finish(ctx, g)
	}

	return hitMine, g, nil
}

// CashOut settles user's active game at the accrued multiplier.
func (s *MinesService) CashOut(ctx context.Context, userID int64) (*game.MinesGame, error) {
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

// finish credits winnings and records the round once it is over.
func (s *MinesService) finish(ctx context.Context, g *game.MinesGame) {
	g.WinAmount = s.limits.CapProfit(g.Bet, g.WinAmount)

	meta := map[string]interface{}{"round_id": g.ID, "game": string(domain.GameTypeMines)}
	if g.WinAmount > 0 {
		creditPayout(ctx, s.settler, s.pending, g.UserID, g.ID, g.WinAmount, meta, 0)
	}

	result := domain.GameResultLose
	if g.WinAmount > 0 {
		result = domain.GameResultWin
	}
	monitoring.RecordRound(string(domain.GameTypeMines), string(result), g.Bet, g.WinAmount)

	if s.history != nil {
		gh := &domain.GameHistory{
			UserID:    g.UserID,
			GameType:  domain.GameTypeMines,
			Result:    result,
			BetAmount: g.Bet,
			WinAmount: g.WinAmount,
			Details:   g.State(),
		}
		if err := s.history.Create(ctx, gh); err != nil {
			logger.Error("game history write failed", "user_id", g.UserID, "game", "mines", "error", err)
		}
	}
}

// cleanupExpiredGames drops rounds abandoned for over an hour. The stake is
// forfeited.
func (s *MinesService) cleanupExpiredGames() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for userID, g := range s.activeGames {
			if now.Sub(g.CreatedAt) > time.Hour {
				delete(s.activeGames, userID)
				logger.Warn("abandoned mines game dropped", "user_id", userID, "round_id", g.ID)
			}
		}
		s.mu.Unlock()
	}
}
