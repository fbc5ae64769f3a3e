package game

import (
	"math"
	"testing"

	"casino_webapp/internal/rng"
)

func TestLimboWinChance(t *testing.T) {
	if got := LimboWinChance(2, DefaultRTP); math.Abs(got-49.5) > 1e-9 {
		t.Fatalf("LimboWinChance(2) = %v; want 49.5", got)
	}
	if got := LimboWinChance(99, DefaultRTP); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("LimboWinChance(99) = %v; want 1.0", got)
	}
}

func TestLimboDecision(t *testing.T) {
	// target 2: win chance 49.5%; draw 0.4 -> 40 < 49.5 wins
	out, err := PlayLimbo(2, DefaultRTP, rng.NewSequence(0.4, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if !out.Won || out.Multiplier != 2 {
		t.Fatalf("draw 40 on target 2: won=%v mult=%v", out.Won, out.Multiplier)
	}
	// Cosmetic crash value lands in [target, 3*target] on a win
	if out.CrashValue < 2 || out.CrashValue > 6 {
		t.Fatalf("win crash value %v outside [2,6]", out.CrashValue)
	}

	out, err = PlayLimbo(2, DefaultRTP, rng.NewSequence(0.6, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if out.Won || out.Multiplier != 0 {
		t.Fatalf("draw 60 on target 2 should lose")
	}
	if out.CrashValue < 1 || out.CrashValue >= 2 {
		t.Fatalf("loss crash value %v outside [1,2)", out.CrashValue)
	}
}

func TestLimboRejectsBadTarget(t *testing.T) {
	for _, target := range []float64{1.0, 0.5, 10001} {
		if _, err := PlayLimbo(target, DefaultRTP, rng.NewSequence(0.5)); err == nil {
			t.Fatalf("target %v accepted", target)
		}
	}
}

func TestValidateLimboTarget(t *testing.T) {
	limits := Limits{MinBet: 20, MaxBet: 100000, MaxProfit: 100000}

	// maxProfit/bet = 100: targets above it cannot be paid in full
	if err := ValidateLimboTarget(100, 1000, limits); err != nil {
		t.Fatalf("target at the cap rejected: %v", err)
	}
	if err := ValidateLimboTarget(5000, 1000, limits); err != ErrInvalidLimboTarget {
		t.Fatalf("target above maxProfit/bet err = %v; want ErrInvalidLimboTarget", err)
	}

	// No profit cap configured: only the static range applies
	if err := ValidateLimboTarget(5000, 1000, Limits{MinBet: 20, MaxBet: 100000}); err != nil {
		t.Fatalf("uncapped target rejected: %v", err)
	}
	if err := ValidateLimboTarget(1.0, 1000, limits); err != ErrInvalidLimboTarget {
		t.Fatalf("target below minimum err = %v", err)
	}
}

func TestLimboRTPConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("simulation")
	}

	src := rng.NewSeeded(7)
	const rounds = 1_000_000
	total := 0.0
	for i := 0; i < rounds; i++ {
		out, err := PlayLimbo(2, DefaultRTP, src)
		if err != nil {
			t.Fatal(err)
		}
		total += out.Multiplier
	}

	realized := total / rounds
	if math.Abs(realized-DefaultRTP) > 0.01 {
		t.Fatalf("realized RTP = %v; want ~%v", realized, DefaultRTP)
	}
}
