package game

import (
	"testing"

	"casino_webapp/internal/rng"
)

func TestKenoTablesComplete(t *testing.T) {
	if err := ValidateKenoTables(); err != nil {
		t.Fatal(err)
	}
}

func TestKenoMultiplierLookup(t *testing.T) {
	cases := []struct {
		risk  Risk
		picks int
		hits  int
		want  float64
	}{
		{RiskLow, 1, 1, 3.96},
		{RiskLow, 10, 10, 2000},
		{RiskMedium, 10, 10, 5000},
		{RiskHigh, 3, 3, 81},
		{RiskHigh, 10, 0, 0},
	}
	for _, tc := range cases {
		if got := KenoMultiplier(tc.risk, tc.picks, tc.hits); got != tc.want {
			t.Fatalf("KenoMultiplier(%s, %d, %d) = %v; want %v", tc.risk, tc.picks, tc.hits, got, tc.want)
		}
	}
}

func TestKenoRejectsBadPicks(t *testing.T) {
	cases := [][]int{
		{},                                     // empty
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},    // too many
		{1, 1},                                 // duplicate
		{0},                                    // out of range
		{41},                                   // out of range
	}
	for _, picks := range cases {
		if _, err := PlayKeno(picks, RiskLow, rng.NewSeeded(1)); err == nil {
			t.Fatalf("picks %v accepted", picks)
		}
	}

	if _, err := PlayKeno([]int{1, 2, 3}, Risk("wild"), rng.NewSeeded(1)); err != ErrInvalidRisk {
		t.Fatalf("bad risk err = %v", err)
	}
}

func TestKenoDraw(t *testing.T) {
	out, err := PlayKeno([]int{1, 2, 3, 4, 5}, RiskMedium, rng.NewSeeded(11))
	if err != nil {
		t.Fatal(err)
	}

	if len(out.Drawn) != KenoDrawCount {
		t.Fatalf("drew %d numbers; want %d", len(out.Drawn), KenoDrawCount)
	}

	// Without replacement: all drawn numbers unique and in range
	seen := make(map[int]bool)
	for _, d := range out.Drawn {
		if d < 1 || d > KenoBoardSize || seen[d] {
			t.Fatalf("bad draw set %v", out.Drawn)
		}
		seen[d] = true
	}

	hits := 0
	for _, p := range out.Picks {
		if seen[p] {
			hits++
		}
	}
	if hits != out.Hits {
		t.Fatalf("hits = %d; recount = %d", out.Hits, hits)
	}
	if out.Multiplier != KenoMultiplier(RiskMedium, 5, hits) {
		t.Fatalf("multiplier mismatch")
	}
}
