package game

import (
	"errors"

	"casino_webapp/internal/rng"
)

const (
	LimboMinTarget = 1.01
	LimboMaxTarget = 10000.0
)

var ErrInvalidLimboTarget = errors.New("limbo target must be between 1.01 and 10000")

// LimboOutcome is the result of one limbo round. CrashValue is cosmetic: it
// is drawn after the win/loss decision and never feeds back into it.
type LimboOutcome struct {
	Target     float64 `json:"target"`
	Won        bool    `json:"won"`
	WinChance  float64 `json:"win_chance"`
	CrashValue float64 `json:"crash_value"`
	Multiplier float64 `json:"multiplier"`
}

// LimboWinChance returns the win probability (percent) for a target.
func LimboWinChance(target, rtp float64) float64 {
	return rtp * 100 / target
}

// ValidateLimboTarget bounds the target by the static range and by the
// largest multiplier the profit cap can actually pay for this bet. A target
// the cap would silently shrink is rejected up front, before any debit.
func ValidateLimboTarget(target float64, amount int64, l Limits) error {
	if target < LimboMinTarget || target > LimboMaxTarget {
		return ErrInvalidLimboTarget
	}
	if l.MaxProfit > 0 && amount > 0 && target > float64(l.MaxProfit)/float64(amount) {
		return ErrInvalidLimboTarget
	}
	return nil
}

// PlayLimbo decides a limbo bet against the target multiplier.
func PlayLimbo(target, rtp float64, r rng.Source) (LimboOutcome, error) {
	if target < LimboMinTarget || target > LimboMaxTarget {
		return LimboOutcome{}, ErrInvalidLimboTarget
	}

	winChance := LimboWinChance(target, rtp)
	won := r.Float64()*100 < winChance

	// Display value: on a win somewhere past the target, on a loss short
	// of it.
	var crashValue float64
	if won {
		crashValue = target + r.Float64()*2*target
	} else {
		crashValue = 1 + r.Float64()*(target-1)
	}

	out := LimboOutcome{
		Target:     target,
		Won:        won,
		WinChance:  winChance,
		CrashValue: floor2(crashValue),
	}
	if won {
		out.Multiplier = target
	}
	return out, nil
}
