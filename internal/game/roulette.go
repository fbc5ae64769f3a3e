package game

import (
	"errors"
	"fmt"

	"casino_webapp/internal/rng"
)

// European single-zero roulette: 37 pockets, multi-spot settlement. A spin
// can win several spots at once (a straight number also pays its color,
// parity and half bets).

const RoulettePockets = 37

var rouletteRedPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// Fixed odds per spot type (winner is paid stake * (odds + 1)).
var rouletteOdds = map[string]int64{
	"straight": 35,
	"red":      1,
	"black":    1,
	"odd":      1,
	"even":     1,
	"low":      1,
	"high":     1,
	"dozen1":   2,
	"dozen2":   2,
	"dozen3":   2,
	"column1":  2,
	"column2":  2,
	"column3":  2,
}

var (
	ErrInvalidRouletteSpot   = errors.New("unknown roulette bet spot")
	ErrInvalidRouletteNumber = errors.New("straight bet number must be 0-36")
	ErrNoRouletteBets        = errors.New("at least one bet spot is required")
)

// RouletteBet is one placed spot. Number is only used for straight bets.
type RouletteBet struct {
	Spot   string `json:"spot"`
	Number int    `json:"number,omitempty"`
	Amount int64  `json:"amount"`
}

func (b RouletteBet) Validate() error {
	if _, ok := rouletteOdds[b.Spot]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidRouletteSpot, b.Spot)
	}
	if b.Spot == "straight" && (b.Number < 0 || b.Number >= RoulettePockets) {
		return ErrInvalidRouletteNumber
	}
	if b.Amount <= 0 {
		return ErrInvalidWagerAmount
	}
	return nil
}

// spotWins decides whether a spot covers the drawn pocket. Zero only pays
// straight bets.
func spotWins(bet RouletteBet, pocket int) bool {
	switch bet.Spot {
	case "straight":
		return pocket == bet.Number
	case "red":
		return rouletteRedPockets[pocket]
	case "black":
		return pocket != 0 && !rouletteRedPockets[pocket]
	case "odd":
		return pocket != 0 && pocket%2 == 1
	case "even":
		return pocket != 0 && pocket%2 == 0
	case "low":
		return pocket >= 1 && pocket <= 18
	case "high":
		return pocket >= 19 && pocket <= 36
	case "dozen1":
		return pocket >= 1 && pocket <= 12
	case "dozen2":
		return pocket >= 13 && pocket <= 24
	case "dozen3":
		return pocket >= 25 && pocket <= 36
	case "column1":
		return pocket != 0 && pocket%3 == 1
	case "column2":
		return pocket != 0 && pocket%3 == 2
	case "column3":
		return pocket != 0 && pocket%3 == 0
	}
	return false
}

// PocketColor returns green/red/black for a pocket.
func PocketColor(pocket int) string {
	switch {
	case pocket == 0:
		return "green"
	case rouletteRedPockets[pocket]:
		return "red"
	default:
		return "black"
	}
}

// RouletteOutcome is one settled spin across all placed spots.
type RouletteOutcome struct {
	Pocket      int            `json:"pocket"`
	Color       string         `json:"color"`
	TotalStake  int64          `json:"total_stake"`
	TotalPayout int64          `json:"total_payout"`
	WinningBets []RouletteBet  `json:"winning_bets"`
	Payouts     map[int]int64  `json:"payouts"` // bet index -> payout
}

// PlayRoulette draws a single pocket and settles every placed bet.
func PlayRoulette(bets []RouletteBet, r rng.Source) (RouletteOutcome, error) {
	if len(bets) == 0 {
		return RouletteOutcome{}, ErrNoRouletteBets
	}
	for _, b := range bets {
		if err := b.Validate(); err != nil {
			return RouletteOutcome{}, err
		}
	}

	pocket := rng.IntN(r, RoulettePockets)

	out := RouletteOutcome{
		Pocket:  pocket,
		Color:   PocketColor(pocket),
		Payouts: make(map[int]int64),
	}
	for i, b := range bets {
		out.TotalStake += b.Amount
		if spotWins(b, pocket) {
			payout := b.Amount * (rouletteOdds[b.Spot] + 1)
			out.Payouts[i] = payout
			out.TotalPayout += payout
			out.WinningBets = append(out.WinningBets, b)
		}
	}
	return out, nil
}
