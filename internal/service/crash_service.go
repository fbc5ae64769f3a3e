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

// CrashService manages active crash rounds. The crash point is drawn at
// start and kept server-side; the player cashes out against the clock.
type CrashService struct {
	settler Settler
	history HistoryRecorder
	pending PendingCreditStore
	limits  game.Limits
	rand    rng.Source

	activeGames map[int64]*game.CrashRound // userID -> round
	mu          sync.RWMutex
}

func NewCrashService(settler Settler, history HistoryRecorder, pending PendingCreditStore, limits game.Limits, r rng.Source) *CrashService {
	s := &CrashService{
		settler:     settler,
		history:     history,
		pending:     pending,
		limits:      limits,
		rand:        r,
		activeGames: make(map[int64]*game.CrashRound),
	}

	go s.sweepCrashedRounds()

	return s
}

// StartGame debits the bet and starts the curve.
func (s *CrashService) StartGame(ctx context.Context, userID int64, bet int64) (*game.CrashRound, error) {
	if err := game.ValidateWager(bet, s.limits); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.activeGames[userID]; ok {
		if existing.MarkCrashed(time.Now()) {
			// The sweeper has not collected this loss yet; settle it so the
			// history row and metrics are not dropped
			delete(s.activeGames, userID)
			s.finish(ctx, existing)
		} else if existing.IsActive() {
			return nil, ErrRoundInFlight
		}
	}

	gameID := uuid.New().String()[:8]
	g := game.NewCrashRound(gameID, userID, bet, s.rand)

	meta := map[string]interface{}{"round_id": gameID, "game": string(domain.GameTypeCrash)}
	if _, err := s.settler.Debit(ctx, userID, bet, TxTypeBet, meta); err != nil {
		return nil, err
	}

	s.activeGames[userID] = g
	return g, nil
}

// GetActiveGame returns user's active round, or nil.
func (s *CrashService) GetActiveGame(userID int64) *game.CrashRound {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.activeGames[userID]
	if !ok {
		return nil
	}
	return g
}

// CashOut locks in the current multiplier. A cashout after the crash point
// settles the round as lost.
func (s *CrashService) CashOut(ctx context.Context, userID int64) (*game.CrashRound, error) {
	s.mu.RLock()
	g, ok := s.activeGames[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, game.ErrGameNotActive
	}

	if _, err := g.CashOut(time.Now()); err != nil {
		return g, err
	}

	s.mu.Lock()
	delete(s.activeGames, userID)
	s.mu.Unlock()

	s.finish(ctx, g)
	return g, nil
}

func (s *CrashService) finish(ctx context.Context, g *game.CrashRound) {
	g.WinAmount = s.limits.CapProfit(g.Bet, g.WinAmount)

	meta := map[string]interface{}{"round_id": g.ID, "game": string(domain.GameTypeCrash)}
	if g.WinAmount > 0 {
		creditPayout(ctx, s.settler, s.pending, g.UserID, g.ID, g.WinAmount, meta, 0)
	}

	result := domain.GameResultLose
	if g.WinAmount > 0 {
		result = domain.GameResultWin
	}
	monitoring.RecordRound(string(domain.GameTypeCrash), string(result), g.Bet, g.WinAmount)

	if s.history != nil {
		gh := &domain.GameHistory{
			UserID:    g.UserID,
			GameType:  domain.GameTypeCrash,
			Result:    result,
			BetAmount: g.Bet,
			WinAmount: g.WinAmount,
			Details:   g.State(time.Now()),
		}
		if err := s.history.Create(ctx, gh); err != nil {
			logger.Error("game history write failed", "user_id", g.UserID, "game", "crash", "error", err)
		}
	}
}

// sweepCrashedRounds finalizes rounds whose curve already passed the crash
// point without a cashout.
func (s *CrashService) sweepCrashedRounds() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		s.mu.Lock()
		var done []*game.CrashRound
		for userID, g := range s.activeGames {
			if g.MarkCrashed(now) {
				delete(s.activeGames, userID)
				done = append(done, g)
			}
		}
		s.mu.Unlock()

		for _, g := range done {
			s.finish(context.Background(), g)
		}
	}
}
