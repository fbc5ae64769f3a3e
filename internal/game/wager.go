package game

import "errors"

// Limits are the shared wager bounds, in minor currency units.
type Limits struct {
	MinBet    int64
	MaxBet    int64
	MaxProfit int64
}

var ErrInvalidWagerAmount = errors.New("bet amount out of allowed range")

// ValidateWager is the single clamp used by every game. Balance sufficiency
// is checked at debit time, not here.
func ValidateWager(amount int64, l Limits) error {
	if amount < l.MinBet || amount > l.MaxBet {
		return ErrInvalidWagerAmount
	}
	return nil
}

// CapProfit limits a payout so net winnings never exceed MaxProfit.
func (l Limits) CapProfit(amount, payout int64) int64 {
	if l.MaxProfit > 0 && payout-amount > l.MaxProfit {
		return amount + l.MaxProfit
	}
	return payout
}
