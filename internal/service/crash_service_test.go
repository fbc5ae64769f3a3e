package service

import (
	"context"
	"sync"
	"testing"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/game"
	"casino_webapp/internal/rng"
)

type fakeHistory struct {
	mu   sync.Mutex
	rows []*domain.GameHistory
}

func (f *fakeHistory) Create(ctx context.Context, gh *domain.GameHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, gh)
	return nil
}

func (f *fakeHistory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// Draw 0.0 yields an instant bust at 1.00: the round is crashed the moment
// it starts, before the sweeper has had a chance to collect it.
func TestCrashStartSettlesStaleCrashedRound(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	history := &fakeHistory{}
	svc := NewCrashService(settler, history, nil, testLimits(), rng.NewSequence(0.0))

	g1, err := svc.StartGame(context.Background(), 1, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if settler.balance != 9000 {
		t.Fatalf("balance after start = %d; want 9000", settler.balance)
	}

	// Replacing the crashed round settles it instead of dropping the loss
	g2, err := svc.StartGame(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("restart over crashed round err = %v", err)
	}
	if g2 == g1 {
		t.Fatal("expected a fresh round")
	}
	if g1.Status != game.CrashStatusCrashed {
		t.Fatalf("stale round status = %s; want crashed", g1.Status)
	}
	if history.count() != 1 {
		t.Fatalf("history rows = %d; want the stale loss recorded", history.count())
	}
	history.mu.Lock()
	row := history.rows[0]
	history.mu.Unlock()
	if row.Result != domain.GameResultLose || row.BetAmount != 1000 || row.WinAmount != 0 {
		t.Fatalf("stale loss row = %+v", row)
	}
	if settler.balance != 8000 {
		t.Fatalf("balance after second debit = %d; want 8000", settler.balance)
	}
}

func TestCrashStartBlocksLiveRound(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	// Draw 0.5 lands in the [5,7) bucket: crash point 6.00, curve still
	// climbing for several seconds
	svc := NewCrashService(settler, nil, nil, testLimits(), rng.NewSequence(0.5))

	if _, err := svc.StartGame(context.Background(), 1, 1000); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.StartGame(context.Background(), 1, 1000); err != ErrRoundInFlight {
		t.Fatalf("second start err = %v; want ErrRoundInFlight", err)
	}
	if settler.balance != 9000 {
		t.Fatalf("balance = %d; only the first debit should land", settler.balance)
	}
}
