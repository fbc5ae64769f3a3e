package game

import (
	"errors"
	"sync"
	"time"

	"casino_webapp/internal/rng"
)

const (
	CoinFlipMaxStreak = 25

	CoinFlipStatusActive    = "active"
	CoinFlipStatusCashedOut = "cashed_out"
	CoinFlipStatusLost      = "lost"

	CoinSideHeads = "heads"
	CoinSideTails = "tails"
)

var ErrInvalidCoinSide = errors.New("guess must be heads or tails")

// CoinFlipGame is a compounding coinflip round: each correct guess multiplies
// the accrued multiplier by 2 x RTP; a wrong guess loses everything. The
// player may cash out after any win.
type CoinFlipGame struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	Bet         int64      `json:"bet"`
	Streak      int        `json:"streak"`
	Multiplier  float64    `json:"multiplier"`
	Status      string     `json:"status"`
	WinAmount   int64      `json:"win_amount"`
	FlipHistory []string   `json:"flip_history"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`

	rtp float64
	mu  sync.RWMutex
}

func NewCoinFlipGame(id string, userID int64, bet int64, rtp float64) (*CoinFlipGame, error) {
	if bet <= 0 {
		return nil, ErrInvalidWagerAmount
	}
	return &CoinFlipGame{
		ID:          id,
		UserID:      userID,
		Bet:         bet,
		Multiplier:  1.0,
		Status:      CoinFlipStatusActive,
		FlipHistory: []string{},
		CreatedAt:   time.Now(),
		rtp:         rtp,
	}, nil
}

// CoinFlipStepMultiplier is the per-win compounding factor (2 x RTP).
func CoinFlipStepMultiplier(rtp float64) float64 {
	return 2 * rtp
}

// Flip draws a fair 50/50 side and compares it to the guess.
func (g *CoinFlipGame) Flip(guess string, r rng.Source) (side string, win bool, err error) {
	if guess != CoinSideHeads && guess != CoinSideTails {
		return "", false, ErrInvalidCoinSide
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != CoinFlipStatusActive {
		return "", false, ErrGameNotActive
	}

	side = CoinSideHeads
	if r.Float64() < 0.5 {
		side = CoinSideTails
	}
	g.FlipHistory = append(g.FlipHistory, side)

	if side != guess {
		g.Status = CoinFlipStatusLost
		g.Multiplier = 0
		g.WinAmount = 0
		now := time.Now()
		g.FinishedAt = &now
		return side, false, nil
	}

	g.Streak++
	g.Multiplier *= CoinFlipStepMultiplier(g.rtp)

	// Forced cashout at the streak cap
	if g.Streak >= CoinFlipMaxStreak {
		g.Status = CoinFlipStatusCashedOut
		g.WinAmount = Payout(g.Bet, g.Multiplier)
		now := time.Now()
		g.FinishedAt = &now
	}
	return side, true, nil
}

// CashOut settles the round at the current compounded multiplier.
func (g *CoinFlipGame) CashOut() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != CoinFlipStatusActive {
		return 0, ErrGameNotActive
	}
	if g.Streak == 0 {
		return 0, ErrNothingToCashOut
	}

	g.Status = CoinFlipStatusCashedOut
	g.WinAmount = Payout(g.Bet, g.Multiplier)
	now := time.Now()
	g.FinishedAt = &now
	return g.WinAmount, nil
}

func (g *CoinFlipGame) IsActive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Status == CoinFlipStatusActive
}

// State returns the client-safe view of the round.
func (g *CoinFlipGame) State() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return map[string]interface{}{
		"id":              g.ID,
		"bet":             g.Bet,
		"streak":          g.Streak,
		"multiplier":      floor2(g.Multiplier),
		"next_multiplier": floor2(g.Multiplier * CoinFlipStepMultiplier(g.rtp)),
		"status":          g.Status,
		"win_amount":      g.WinAmount,
		"potential_win":   Payout(g.Bet, g.Multiplier),
		"flip_history":    g.FlipHistory,
	}
}
