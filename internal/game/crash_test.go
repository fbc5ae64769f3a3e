package game

import (
	"testing"
	"time"

	"casino_webapp/internal/rng"
)

func TestCrashInstantBust(t *testing.T) {
	// First draw under 1% -> crash point pinned to 1.00
	if got := CrashPoint(rng.NewSequence(0.005)); got != 1.00 {
		t.Fatalf("CrashPoint = %v; want 1.00", got)
	}
}

func TestCrashBucketBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		draws  []float64
		lo, hi float64
	}{
		// draws: [floor check, bucket draw, in-bucket draw]
		{"top bucket just under 0.10", []float64{0.5, 0.000999, 0.5}, 1000, 10000},
		{"second bucket", []float64{0.5, 0.01, 0.5}, 50, 1000},
		{"20-50 bucket", []float64{0.5, 0.05, 0.5}, 20, 50},
		{"10-20 bucket", []float64{0.5, 0.10, 0.5}, 10, 20},
		{"7-10 bucket", []float64{0.5, 0.25, 0.5}, 7, 10},
		{"5-7 bucket", []float64{0.5, 0.45, 0.5}, 5, 7},
	}

	for _, tc := range cases {
		got := CrashPoint(rng.NewSequence(tc.draws...))
		if got < tc.lo || got >= tc.hi {
			t.Fatalf("%s: crash point %v outside [%v,%v)", tc.name, got, tc.lo, tc.hi)
		}
	}
}

func TestCrashCubicBulk(t *testing.T) {
	// u=99.99 falls through every bucket into the cubic skew
	got := CrashPoint(rng.NewSequence(0.5, 0.9999, 0.5))
	if got < 1.01 || got >= 5.0 {
		t.Fatalf("bulk crash point %v outside [1.01,5)", got)
	}
	// 1.01 + 0.5^3 * 3.99 = 1.50875 -> 1.50
	if got != 1.50 {
		t.Fatalf("bulk crash point = %v; want 1.50", got)
	}
}

func TestCrashGrowthCurve(t *testing.T) {
	if got := CrashMultiplierAt(0); got != 1.00 {
		t.Fatalf("multiplier at t=0 = %v; want 1.00", got)
	}
	// exp(1) = 2.718... -> 2.71
	if got := CrashMultiplierAt(5 * time.Second); got != 2.71 {
		t.Fatalf("multiplier at 5s = %v; want 2.71", got)
	}
}

func TestCrashRoundCashOut(t *testing.T) {
	// Pin a high crash point so the round is still alive shortly after start
	g := NewCrashRound("c1", 1, 1000, rng.NewSequence(0.5, 0.000999, 0.5))
	if g.CrashPoint < 1000 {
		t.Fatalf("crash point %v; want >= 1000", g.CrashPoint)
	}

	now := g.StartedAt.Add(5 * time.Second)
	win, err := g.CashOut(now)
	if err != nil {
		t.Fatal(err)
	}
	if g.Multiplier != 2.71 {
		t.Fatalf("locked multiplier %v; want 2.71", g.Multiplier)
	}
	if win != Payout(1000, 2.71) {
		t.Fatalf("win = %d", win)
	}
	if _, err := g.CashOut(now); err != ErrGameNotActive {
		t.Fatalf("second cashout err = %v", err)
	}
}

func TestCrashRoundBust(t *testing.T) {
	// Instant-bust crash point: any cashout attempt settles as crashed
	g := NewCrashRound("c2", 1, 1000, rng.NewSequence(0.005))
	now := g.StartedAt.Add(100 * time.Millisecond)

	if !g.Crashed(now) {
		t.Fatal("round not crashed at point 1.00")
	}
	win, err := g.CashOut(now)
	if err != nil {
		t.Fatal(err)
	}
	if win != 0 || g.Status != CrashStatusCrashed {
		t.Fatalf("bust cashout: win=%d status=%s", win, g.Status)
	}
}
