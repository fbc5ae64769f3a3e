package service

import (
	"context"
	"testing"

	"casino_webapp/internal/game"
	"casino_webapp/internal/rng"
)

func TestCoinFlipServiceFlow(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewCoinFlipService(settler, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.7))

	if _, err := svc.StartGame(context.Background(), 1, 1000); err != nil {
		t.Fatal(err)
	}
	if settler.balance != 9000 {
		t.Fatalf("balance after start = %d", settler.balance)
	}

	// 0.7 draws heads
	side, win, _, err := svc.Flip(context.Background(), 1, game.CoinSideHeads)
	if err != nil {
		t.Fatal(err)
	}
	if side != game.CoinSideHeads || !win {
		t.Fatalf("side=%s win=%v", side, win)
	}

	g, err := svc.CashOut(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if g.WinAmount != 1980 {
		t.Fatalf("win amount = %d; want 1980", g.WinAmount)
	}
	if settler.balance != 9000+1980 {
		t.Fatalf("balance = %d; want 10980", settler.balance)
	}
}

func TestCoinFlipServiceLossForfeitsStake(t *testing.T) {
	settler := &fakeSettler{balance: 10000}
	svc := NewCoinFlipService(settler, nil, nil, testLimits(), game.DefaultRTP, rng.NewSequence(0.3))

	if _, err := svc.StartGame(context.Background(), 1, 1000); err != nil {
		t.Fatal(err)
	}

	// 0.3 draws tails; guessing heads loses
	_, win, g, err := svc.Flip(context.Background(), 1, game.CoinSideHeads)
	if err != nil {
		t.Fatal(err)
	}
	if win || g.WinAmount != 0 {
		t.Fatalf("win=%v amount=%d", win, g.WinAmount)
	}
	if settler.balance != 9000 {
		t.Fatalf("balance = %d; want 9000", settler.balance)
	}
	if _, err := svc.CashOut(context.Background(), 1); err != game.ErrGameNotActive {
		t.Fatalf("cashout after loss err = %v", err)
	}
}
