package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/game"
	"casino_webapp/internal/rng"
)

type fakeSettler struct {
	mu         sync.Mutex
	balance    int64
	failCredit bool
	debitHook  func()
	txTypes    []string
}

func (f *fakeSettler) GetBalance(ctx context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance, nil
}

func (f *fakeSettler) Debit(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (int64, error) {
	if f.debitHook != nil {
		f.debitHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balance < amount {
		return 0, ErrInsufficientFunds
	}
	f.balance -= amount
	f.txTypes = append(f.txTypes, txType)
	return f.balance, nil
}

func (f *fakeSettler) Credit(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCredit {
		return 0, errors.New("credit unavailable")
	}
	f.balance += amount
	f.txTypes = append(f.txTypes, txType)
	return f.balance, nil
}

func (f *fakeSettler) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.txTypes...)
}

type fakePendingStore struct {
	mu   sync.Mutex
	rows []*domain.PendingCredit
}

func (f *fakePendingStore) Create(ctx context.Context, pc *domain.PendingCredit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, pc)
	return nil
}

func testLimits() game.Limits {
	return game.Limits{MinBet: 20, MaxBet: 100000}
}

func TestRoundSettlementWin(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.2))

	// roll 20.20 under target 50: win at 1.98
	res, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 50, Over: false})
	if err != nil {
		t.Fatal(err)
	}

	if res.PayoutMinor != 1980 || res.NetMinor != 980 {
		t.Fatalf("payout=%d net=%d", res.PayoutMinor, res.NetMinor)
	}
	if res.Balance != 10980 || settler.balance != 10980 {
		t.Fatalf("balance = %d (settler %d); want 10980", res.Balance, settler.balance)
	}
	if got := settler.types(); len(got) != 2 || got[0] != TxTypeBet || got[1] != TxTypeWin {
		t.Fatalf("ledger entries = %v; want exactly one bet then one win", got)
	}
}

func TestRoundSettlementLoss(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.9))

	// roll 90.90 over target 50: loss, debit only
	res, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 50, Over: false})
	if err != nil {
		t.Fatal(err)
	}

	if res.PayoutMinor != 0 || res.Balance != 9000 || settler.balance != 9000 {
		t.Fatalf("payout=%d balance=%d settler=%d", res.PayoutMinor, res.Balance, settler.balance)
	}
	if got := settler.types(); len(got) != 1 || got[0] != TxTypeBet {
		t.Fatalf("ledger entries = %v; want a single bet", got)
	}
}

func TestRoundRejectsWagerBeforeDebit(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.5))

	if _, err := svc.PlayDice(context.Background(), 1, 10, game.DiceBet{Target: 50, Over: true}); err != game.ErrInvalidWagerAmount {
		t.Fatalf("below-min wager err = %v", err)
	}
	if settler.balance != 10000 || len(settler.types()) != 0 {
		t.Fatalf("balance touched on rejected wager: %d, txs %v", settler.balance, settler.types())
	}
}

func TestRoundRefundsOnDrawError(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.5))

	// Target outside [2, 98] fails inside the draw, after the debit
	if _, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 99.5, Over: true}); err == nil {
		t.Fatal("invalid target accepted")
	}
	if settler.balance != 10000 {
		t.Fatalf("balance after refund = %d; want 10000", settler.balance)
	}
	if got := settler.types(); len(got) != 2 || got[1] != TxTypeRefund {
		t.Fatalf("ledger entries = %v; want bet then refund", got)
	}
}

func TestRoundSerializationGuard(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.9))

	inDebit := make(chan struct{})
	blocker := make(chan struct{})
	var once sync.Once
	settler.debitHook = func() {
		once.Do(func() {
			close(inDebit)
			<-blocker
		})
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 50, Over: false})
		done <- err
	}()

	<-inDebit
	if _, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 50, Over: false}); err != ErrRoundInFlight {
		t.Fatalf("second concurrent round err = %v; want ErrRoundInFlight", err)
	}

	close(blocker)
	if err := <-done; err != nil {
		t.Fatalf("first round err = %v", err)
	}

	// The guard is per game: once the first round finished the slot is free
	if _, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 50, Over: false}); err != nil {
		t.Fatalf("round after release err = %v", err)
	}
}

func TestRoundParksPayoutWhenCreditFails(t *testing.T) {
	settler := &fakeSettler{balance: 10000, failCredit: true}
	pending := &fakePendingStore{}
	svc := NewRoundService(settler, nil, pending, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.2))

	res, err := svc.PlayDice(context.Background(), 1, 1000, game.DiceBet{Target: 50, Over: false})
	if err != nil {
		t.Fatal(err)
	}

	if !res.PayoutPending {
		t.Fatal("payout_pending not set")
	}
	if res.Balance != 9000 || settler.balance != 9000 {
		t.Fatalf("balance = %d; want post-debit 9000", res.Balance)
	}
	if len(pending.rows) != 1 || pending.rows[0].Amount != 1980 || pending.rows[0].RoundID != res.RoundID {
		t.Fatalf("pending rows = %+v", pending.rows)
	}
}

func TestLimboRejectsTargetAboveProfitCap(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	limits := game.Limits{MinBet: 20, MaxBet: 100000, MaxProfit: 100000}
	svc := NewRoundService(settler, nil, nil, nil, nil, limits, game.DefaultRTP, rng.NewSequence(0.0))

	// maxProfit/bet = 100: a 5000x target can never be paid in full
	if _, err := svc.PlayLimbo(context.Background(), 1, 1000, 5000); err != game.ErrInvalidLimboTarget {
		t.Fatalf("err = %v; want ErrInvalidLimboTarget", err)
	}
	if settler.balance != 10000 || len(settler.types()) != 0 {
		t.Fatalf("balance touched on rejected target: %d, txs %v", settler.balance, settler.types())
	}

	// A target the cap can pay goes through untouched
	res, err := svc.PlayLimbo(context.Background(), 1, 1000, 100)
	if err != nil {
		t.Fatal(err)
	}
	if res.PayoutMinor != 100000 {
		t.Fatalf("payout = %d; want full 100x", res.PayoutMinor)
	}
}

func TestRouletteRoundStake(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.52))

	// pocket 19: straight pays 360, red pays 40
	bets := []game.RouletteBet{
		{Spot: "straight", Number: 19, Amount: 10},
		{Spot: "red", Amount: 20},
	}
	res, err := svc.PlayRoulette(context.Background(), 1, bets)
	if err != nil {
		t.Fatal(err)
	}

	if res.AmountMinor != 30 {
		t.Fatalf("staked = %d; want 30", res.AmountMinor)
	}
	if res.PayoutMinor != 400 {
		t.Fatalf("payout = %d; want 400", res.PayoutMinor)
	}
	if settler.balance != 10000-30+400 {
		t.Fatalf("balance = %d", settler.balance)
	}
}

func TestOpenCaseRoundStake(t *testing.T) {
	catalog, err := game.NewCatalog(game.DefaultCatalog())
	if err != nil {
		t.Fatal(err)
	}

	settler := &fakeSettler{balance: 10000}
	svc := NewRoundService(settler, nil, nil, nil, catalog, testLimits(), game.DefaultRTP, rng.NewSequence(0.0))

	res, err := svc.OpenCase(context.Background(), 1, "starter", 3)
	if err != nil {
		t.Fatal(err)
	}
	if res.AmountMinor != 300 {
		t.Fatalf("staked = %d; want price x count = 300", res.AmountMinor)
	}
	if res.PayoutMinor != 90 {
		t.Fatalf("payout = %d; want 3 x 30", res.PayoutMinor)
	}
}
