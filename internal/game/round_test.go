package game

import (
	"testing"

	"casino_webapp/internal/domain"
)

func TestRoundLifecycle(t *testing.T) {
	r := NewRound("r1", 1, domain.GameTypeDice, 1000)
	if r.State != domain.RoundIdle {
		t.Fatalf("initial state %s", r.State)
	}

	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := r.BeginResolve(); err != nil {
		t.Fatal(err)
	}
	if err := r.Settle(1.98); err != nil {
		t.Fatal(err)
	}

	if r.State != domain.RoundSettled || r.Payout != 1980 || r.Net() != 980 {
		t.Fatalf("settled round: state=%s payout=%d net=%d", r.State, r.Payout, r.Net())
	}
}

func TestRoundSettleFromCommitted(t *testing.T) {
	// One-shot games skip the resolving phase
	r := NewRound("r2", 1, domain.GameTypeDice, 1000)
	if err := r.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := r.Settle(0); err != nil {
		t.Fatal(err)
	}
	if r.Payout != 0 {
		t.Fatalf("loss payout = %d", r.Payout)
	}
}

func TestRoundGuards(t *testing.T) {
	r := NewRound("r3", 1, domain.GameTypeDice, 1000)

	if err := r.Settle(2); err != ErrBadTransition {
		t.Fatalf("settle from idle err = %v", err)
	}
	if err := r.BeginResolve(); err != ErrBadTransition {
		t.Fatalf("resolve from idle err = %v", err)
	}

	_ = r.Commit()
	if err := r.Commit(); err != ErrBadTransition {
		t.Fatalf("double commit err = %v", err)
	}

	_ = r.Settle(2)
	if err := r.Settle(3); err != ErrRoundSettled {
		t.Fatalf("double settle err = %v", err)
	}
}

func TestRoundSettlePayout(t *testing.T) {
	r := NewRound("r4", 1, domain.GameTypeRoulette, 50)
	_ = r.Commit()
	if err := r.SettlePayout(420); err != nil {
		t.Fatal(err)
	}
	if r.Payout != 420 || r.Multiplier != 8.4 {
		t.Fatalf("payout=%d mult=%v", r.Payout, r.Multiplier)
	}
}
