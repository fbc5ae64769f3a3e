package game

import (
	"errors"
	"fmt"

	"casino_webapp/internal/rng"
)

const (
	KenoBoardSize = 40 // numbers 1..40
	KenoDrawCount = 10
	KenoMinPicks  = 1
	KenoMaxPicks  = 10
)

// Risk is a named paytable variant trading win frequency for payout size.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

var (
	ErrInvalidRisk      = errors.New("risk must be low, medium or high")
	ErrInvalidKenoPicks = errors.New("keno picks must be 1-10 unique numbers in 1..40")
)

func (r Risk) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// kenoPayouts maps picks count -> multiplier slice indexed by hit count
// (length picks+1, zero entries included).
var kenoPayouts = map[Risk]map[int][]float64{
	RiskLow: {
		1:  {0, 3.96},
		2:  {0, 1.00, 4.00},
		3:  {0, 1.00, 1.50, 10.00},
		4:  {0, 0, 1.30, 2.00, 20.00},
		5:  {0, 0, 1.20, 1.70, 5.00, 50.00},
		6:  {0, 0, 1.10, 1.50, 3.00, 12.00, 100.00},
		7:  {0, 0, 1.05, 1.40, 2.00, 5.00, 25.00, 200.00},
		8:  {0, 0, 1.00, 1.30, 1.80, 3.00, 10.00, 60.00, 400.00},
		9:  {0, 0, 1.10, 1.30, 1.70, 2.50, 7.50, 50.00, 250.00, 1000.00},
		10: {0, 0, 1.00, 1.20, 1.50, 2.00, 5.00, 20.00, 80.00, 400.00, 2000.00},
	},
	RiskMedium: {
		1:  {0, 3.96},
		2:  {0, 1.50, 9.00},
		3:  {0, 0, 2.00, 25.00},
		4:  {0, 0, 1.50, 5.00, 50.00},
		5:  {0, 0, 1.00, 3.00, 12.00, 100.00},
		6:  {0, 0, 0, 2.00, 6.00, 25.00, 200.00},
		7:  {0, 0, 0, 1.50, 4.00, 12.00, 50.00, 400.00},
		8:  {0, 0, 0, 1.00, 3.00, 8.00, 30.00, 150.00, 1000.00},
		9:  {0, 0, 0, 2.00, 2.50, 5.00, 15.00, 100.00, 500.00, 1000.00},
		10: {0, 0, 0, 1.50, 2.00, 4.00, 10.00, 50.00, 250.00, 1000.00, 5000.00},
	},
	RiskHigh: {
		1:  {0, 3.96},
		2:  {0, 0, 17.00},
		3:  {0, 0, 0, 81.00},
		4:  {0, 0, 0, 5.00, 150.00},
		5:  {0, 0, 0, 3.00, 20.00, 300.00},
		6:  {0, 0, 0, 2.00, 10.00, 50.00, 500.00},
		7:  {0, 0, 0, 1.50, 5.00, 25.00, 150.00, 1000.00},
		8:  {0, 0, 0, 1.00, 3.00, 12.00, 60.00, 400.00, 2000.00},
		9:  {0, 0, 0, 0, 4.00, 11.00, 56.00, 500.00, 800.00, 1000.00},
		10: {0, 0, 0, 0, 2.00, 8.00, 40.00, 200.00, 500.00, 1000.00, 5000.00},
	},
}

// ValidateKenoTables confirms every risk x picks combination covers all hit
// counts 0..picks. Called once at startup; a failure is fatal.
func ValidateKenoTables() error {
	for _, risk := range []Risk{RiskLow, RiskMedium, RiskHigh} {
		table, ok := kenoPayouts[risk]
		if !ok {
			return fmt.Errorf("keno: missing table for risk %s", risk)
		}
		for picks := KenoMinPicks; picks <= KenoMaxPicks; picks++ {
			row, ok := table[picks]
			if !ok {
				return fmt.Errorf("keno: risk %s missing row for %d picks", risk, picks)
			}
			if len(row) != picks+1 {
				return fmt.Errorf("keno: risk %s picks %d has %d entries, want %d", risk, picks, len(row), picks+1)
			}
		}
	}
	return nil
}

// KenoMultiplier looks up the payout for a hit count.
func KenoMultiplier(risk Risk, picks, hits int) float64 {
	if row, ok := kenoPayouts[risk][picks]; ok && hits >= 0 && hits < len(row) {
		return row[hits]
	}
	return 0
}

// KenoOutcome is the result of one keno draw.
type KenoOutcome struct {
	Picks      []int   `json:"picks"`
	Drawn      []int   `json:"drawn"`
	Hits       int     `json:"hits"`
	Multiplier float64 `json:"multiplier"`
}

// PlayKeno draws 10 of 40 numbers without replacement (shuffle-and-slice)
// and pays per the risk table.
func PlayKeno(picks []int, risk Risk, r rng.Source) (KenoOutcome, error) {
	if !risk.Valid() {
		return KenoOutcome{}, ErrInvalidRisk
	}
	if len(picks) < KenoMinPicks || len(picks) > KenoMaxPicks {
		return KenoOutcome{}, ErrInvalidKenoPicks
	}
	seen := make(map[int]bool, len(picks))
	for _, p := range picks {
		if p < 1 || p > KenoBoardSize || seen[p] {
			return KenoOutcome{}, ErrInvalidKenoPicks
		}
		seen[p] = true
	}

	board := make([]int, KenoBoardSize)
	for i := range board {
		board[i] = i + 1
	}
	rng.Shuffle(r, len(board), func(i, j int) {
		board[i], board[j] = board[j], board[i]
	})
	drawn := board[:KenoDrawCount]

	hits := 0
	for _, d := range drawn {
		if seen[d] {
			hits++
		}
	}

	return KenoOutcome{
		Picks:      picks,
		Drawn:      drawn,
		Hits:       hits,
		Multiplier: KenoMultiplier(risk, len(picks), hits),
	}, nil
}
