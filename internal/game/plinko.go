package game

import (
	"errors"
	"fmt"

	"casino_webapp/internal/rng"
)

const (
	PlinkoMinRows = 8
	PlinkoMaxRows = 16
)

var ErrInvalidPlinkoRows = errors.New("plinko rows must be between 8 and 16")

// plinkoPayouts maps rows -> multiplier slice indexed by final bucket
// (count of rightward bounces, length rows+1). Tables are symmetric around
// the center bucket: center lowest, edges highest.
var plinkoPayouts = map[Risk]map[int][]float64{
	RiskLow: {
		8:  {5.6, 2.1, 1.1, 1, 0.5, 1, 1.1, 2.1, 5.6},
		9:  {5.6, 2, 1.6, 1, 0.7, 0.7, 1, 1.6, 2, 5.6},
		10: {8.9, 3, 1.4, 1.1, 1, 0.5, 1, 1.1, 1.4, 3, 8.9},
		11: {8.4, 3, 1.9, 1.3, 1, 0.7, 0.7, 1, 1.3, 1.9, 3, 8.4},
		12: {10, 3, 1.6, 1.4, 1.1, 1, 0.5, 1, 1.1, 1.4, 1.6, 3, 10},
		13: {8.1, 4, 3, 1.9, 1.2, 0.9, 0.7, 0.7, 0.9, 1.2, 1.9, 3, 4, 8.1},
		14: {7.1, 4, 1.9, 1.4, 1.3, 1.1, 1, 0.5, 1, 1.1, 1.3, 1.4, 1.9, 4, 7.1},
		15: {15, 8, 3, 2, 1.5, 1.1, 1, 0.7, 0.7, 1, 1.1, 1.5, 2, 3, 8, 15},
		16: {16, 9, 2, 1.4, 1.4, 1.2, 1.1, 1, 0.5, 1, 1.1, 1.2, 1.4, 1.4, 2, 9, 16},
	},
	RiskMedium: {
		8:  {13, 3, 1.3, 0.7, 0.4, 0.7, 1.3, 3, 13},
		9:  {18, 4, 1.7, 0.9, 0.5, 0.5, 0.9, 1.7, 4, 18},
		10: {22, 5, 2, 1.4, 0.6, 0.4, 0.6, 1.4, 2, 5, 22},
		11: {24, 6, 3, 1.8, 0.7, 0.5, 0.5, 0.7, 1.8, 3, 6, 24},
		12: {33, 11, 4, 2, 1.1, 0.6, 0.3, 0.6, 1.1, 2, 4, 11, 33},
		13: {43, 13, 6, 3, 1.3, 0.7, 0.4, 0.4, 0.7, 1.3, 3, 6, 13, 43},
		14: {58, 15, 7, 4, 1.9, 1, 0.5, 0.2, 0.5, 1, 1.9, 4, 7, 15, 58},
		15: {88, 18, 11, 5, 3, 1.3, 0.5, 0.3, 0.3, 0.5, 1.3, 3, 5, 11, 18, 88},
		16: {110, 41, 10, 5, 3, 1.5, 1, 0.5, 0.3, 0.5, 1, 1.5, 3, 5, 10, 41, 110},
	},
	RiskHigh: {
		8:  {29, 4, 1.5, 0.3, 0.2, 0.3, 1.5, 4, 29},
		9:  {43, 7, 2, 0.6, 0.2, 0.2, 0.6, 2, 7, 43},
		10: {76, 10, 3, 0.9, 0.3, 0.2, 0.3, 0.9, 3, 10, 76},
		11: {120, 14, 5.2, 1.4, 0.4, 0.2, 0.2, 0.4, 1.4, 5.2, 14, 120},
		12: {170, 24, 8.1, 2, 0.7, 0.2, 0.2, 0.2, 0.7, 2, 8.1, 24, 170},
		13: {260, 37, 11, 4, 1, 0.2, 0.2, 0.2, 0.2, 1, 4, 11, 37, 260},
		14: {420, 56, 18, 5, 1.9, 0.3, 0.2, 0.2, 0.2, 0.3, 1.9, 5, 18, 56, 420},
		15: {620, 83, 27, 8, 3, 0.5, 0.2, 0.2, 0.2, 0.2, 0.5, 3, 8, 27, 83, 620},
		16: {1000, 130, 26, 9, 4, 2, 0.2, 0.2, 0.2, 0.2, 0.2, 2, 4, 9, 26, 130, 1000},
	},
}

// ValidatePlinkoTables checks every table has rows+1 buckets. Fatal at
// startup on failure.
func ValidatePlinkoTables() error {
	for _, risk := range []Risk{RiskLow, RiskMedium, RiskHigh} {
		table, ok := plinkoPayouts[risk]
		if !ok {
			return fmt.Errorf("plinko: missing tables for risk %s", risk)
		}
		for rows := PlinkoMinRows; rows <= PlinkoMaxRows; rows++ {
			row, ok := table[rows]
			if !ok {
				return fmt.Errorf("plinko: risk %s missing table for %d rows", risk, rows)
			}
			if len(row) != rows+1 {
				return fmt.Errorf("plinko: risk %s rows %d has %d buckets, want %d", risk, rows, len(row), rows+1)
			}
		}
	}
	return nil
}

// PlinkoOutcome is one ball drop. Path holds 0 (left) / 1 (right) per row;
// the bucket is the count of rightward bounces.
type PlinkoOutcome struct {
	Rows       int     `json:"rows"`
	Risk       Risk    `json:"risk"`
	Path       []int   `json:"path"`
	Bucket     int     `json:"bucket"`
	Multiplier float64 `json:"multiplier"`
}

// PlayPlinko drops a ball: one fair coin flip per row.
func PlayPlinko(rows int, risk Risk, r rng.Source) (PlinkoOutcome, error) {
	if rows < PlinkoMinRows || rows > PlinkoMaxRows {
		return PlinkoOutcome{}, ErrInvalidPlinkoRows
	}
	table, ok := plinkoPayouts[risk]
	if !ok {
		return PlinkoOutcome{}, ErrInvalidRisk
	}

	path := make([]int, rows)
	bucket := 0
	for i := range path {
		if r.Float64() >= 0.5 {
			path[i] = 1
			bucket++
		}
	}

	return PlinkoOutcome{
		Rows:       rows,
		Risk:       risk,
		Path:       path,
		Bucket:     bucket,
		Multiplier: table[rows][bucket],
	}, nil
}
