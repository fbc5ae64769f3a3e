package game

import (
	"math"
	"testing"

	"casino_webapp/internal/rng"
)

func TestWheelTemplates(t *testing.T) {
	if err := ValidateWheelTemplates(DefaultRTP); err != nil {
		t.Fatal(err)
	}
}

func TestWheelHighRiskJackpot(t *testing.T) {
	for _, segments := range []int{10, 20, 30, 40, 50} {
		wheel, err := BuildWheel(segments, RiskHigh, DefaultRTP)
		if err != nil {
			t.Fatal(err)
		}
		want := floor2(float64(segments) * DefaultRTP)
		if wheel[segments-1] != want {
			t.Fatalf("%d segments: jackpot = %v; want %v", segments, wheel[segments-1], want)
		}
		for i := 0; i < segments-1; i++ {
			if wheel[i] != 0 {
				t.Fatalf("%d segments: slot %d = %v; want 0", segments, i, wheel[i])
			}
		}
	}
}

func TestWheelLowRiskExpectedReturn(t *testing.T) {
	wheel, err := BuildWheel(50, RiskLow, DefaultRTP)
	if err != nil {
		t.Fatal(err)
	}

	ev := 0.0
	for _, m := range wheel {
		ev += m / float64(len(wheel))
	}
	// Template: 1.5 + 7*1.2 + 2*0 per 10 slots = 0.99 average
	if math.Abs(ev-DefaultRTP) > 1e-6 {
		t.Fatalf("low risk EV = %v; want %v", ev, DefaultRTP)
	}
}

func TestWheelRejectsBadSegments(t *testing.T) {
	for _, segments := range []int{0, 5, 15, 60} {
		if _, err := BuildWheel(segments, RiskLow, DefaultRTP); err != ErrInvalidWheelSegments {
			t.Fatalf("segments %d: err = %v", segments, err)
		}
	}
}

func TestWheelSpin(t *testing.T) {
	out, err := PlayWheel(10, RiskLow, DefaultRTP, rng.NewSequence(0.0))
	if err != nil {
		t.Fatal(err)
	}
	if out.Index != 0 || out.Multiplier != 1.5 {
		t.Fatalf("spin at 0.0: index=%d mult=%v", out.Index, out.Multiplier)
	}

	out, err = PlayWheel(10, RiskLow, DefaultRTP, rng.NewSequence(0.999))
	if err != nil {
		t.Fatal(err)
	}
	if out.Index != 9 || out.Multiplier != 0 {
		t.Fatalf("spin at 0.999: index=%d mult=%v", out.Index, out.Multiplier)
	}
}
