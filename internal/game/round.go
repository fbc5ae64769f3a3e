package game

import (
	"errors"

	"casino_webapp/internal/domain"
)

var (
	ErrBadTransition = errors.New("invalid round state transition")
	ErrRoundSettled  = errors.New("round already settled")
)

// Round is the per-bet state machine: Idle -> Committed -> Resolving ->
// Settled. The debit happens at Commit, before any RNG draw; the credit
// happens at Settle. A settled round is immutable.
type Round struct {
	ID         string
	UserID     int64
	GameType   domain.GameType
	Amount     int64
	State      domain.RoundState
	Multiplier float64
	Payout     int64
}

func NewRound(id string, userID int64, gameType domain.GameType, amount int64) *Round {
	return &Round{
		ID:       id,
		UserID:   userID,
		GameType: gameType,
		Amount:   amount,
		State:    domain.RoundIdle,
	}
}

// Commit marks the bet as placed. Callers debit the wager immediately after.
func (r *Round) Commit() error {
	if r.State != domain.RoundIdle {
		return ErrBadTransition
	}
	r.State = domain.RoundCommitted
	return nil
}

// BeginResolve enters the resolving phase. One-shot games may skip straight
// to Settle; multi-step games (mines, crash, coinflip) live here between
// steps.
func (r *Round) BeginResolve() error {
	if r.State != domain.RoundCommitted {
		return ErrBadTransition
	}
	r.State = domain.RoundResolving
	return nil
}

// Settle records the final multiplier and payout and freezes the round.
func (r *Round) Settle(multiplier float64) error {
	switch r.State {
	case domain.RoundCommitted, domain.RoundResolving:
	case domain.RoundSettled:
		return ErrRoundSettled
	default:
		return ErrBadTransition
	}

	r.Multiplier = multiplier
	r.Payout = Payout(r.Amount, multiplier)
	r.State = domain.RoundSettled
	return nil
}

// SettlePayout settles with an exact payout (roulette pays per-spot integer
// amounts that do not come from a single multiplier).
func (r *Round) SettlePayout(payout int64) error {
	switch r.State {
	case domain.RoundCommitted, domain.RoundResolving:
	case domain.RoundSettled:
		return ErrRoundSettled
	default:
		return ErrBadTransition
	}

	r.Payout = payout
	if r.Amount > 0 {
		r.Multiplier = float64(payout) / float64(r.Amount)
	}
	r.State = domain.RoundSettled
	return nil
}

// Net returns payout minus the wagered amount.
func (r *Round) Net() int64 {
	return r.Payout - r.Amount
}
