package service

import "context"

// Settler is the balance contract every game round runs against: the wager is
// debited exactly once before any randomness is drawn, and the payout is
// credited exactly once at settlement. Implemented by BalanceService; tests
// substitute a fake.
type Settler interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	Debit(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (newBalance int64, err error)
	Credit(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (newBalance int64, err error)
}

const (
	TxTypeBet    = "bet"
	TxTypeWin    = "win"
	TxTypeRefund = "refund"
	TxTypeSignup = "signup_bonus"
)
