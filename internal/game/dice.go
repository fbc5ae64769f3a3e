package game

import (
	"errors"
	"math"

	"casino_webapp/internal/rng"
)

const (
	DiceMinTarget = 2.0
	DiceMaxTarget = 98.0

	diceMinChance = 0.01
	diceMaxChance = 99.99
)

var ErrInvalidDiceTarget = errors.New("dice target must be between 2 and 98")

// DiceBet is a roll-over/roll-under threshold bet.
type DiceBet struct {
	Target float64 `json:"target"`
	Over   bool    `json:"over"`
}

// DiceOutcome is the result of one roll.
type DiceOutcome struct {
	Roll       float64 `json:"roll"`
	Won        bool    `json:"won"`
	WinChance  float64 `json:"win_chance"`
	Multiplier float64 `json:"multiplier"`
}

func (b DiceBet) Validate() error {
	if b.Target < DiceMinTarget || b.Target > DiceMaxTarget {
		return ErrInvalidDiceTarget
	}
	return nil
}

// DiceWinChance returns the win probability as a percentage.
func DiceWinChance(target float64, over bool) float64 {
	chance := target
	if over {
		chance = 100 - target
	}
	if chance < diceMinChance {
		chance = diceMinChance
	}
	if chance > diceMaxChance {
		chance = diceMaxChance
	}
	return chance
}

// DiceMultiplier returns the payout multiplier for a threshold bet.
func DiceMultiplier(target float64, over bool, rtp float64) float64 {
	return floor2(100 / DiceWinChance(target, over) * rtp)
}

// PlayDice rolls in [0, 101) to 2 decimal places and decides the bet.
func PlayDice(bet DiceBet, rtp float64, r rng.Source) (DiceOutcome, error) {
	if err := bet.Validate(); err != nil {
		return DiceOutcome{}, err
	}

	roll := math.Floor(r.Float64()*101*100) / 100

	won := roll < bet.Target
	if bet.Over {
		won = roll > bet.Target
	}

	out := DiceOutcome{
		Roll:      roll,
		Won:       won,
		WinChance: DiceWinChance(bet.Target, bet.Over),
	}
	if won {
		out.Multiplier = DiceMultiplier(bet.Target, bet.Over, rtp)
	}
	return out, nil
}
