package service

import (
	"context"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/logger"
	"casino_webapp/internal/monitoring"
)

// creditPayout credits a win, retrying once. If both attempts fail the amount
// is parked in pending_credits for reconciliation instead of being retried
// forever: the round stays settled and the player is never double-credited.
func creditPayout(ctx context.Context, settler Settler, pending PendingCreditStore, userID int64, roundID string, payout int64, meta map[string]interface{}, fallbackBalance int64) (balance int64, pendingFlag bool) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		balance, err = settler.Credit(ctx, userID, payout, TxTypeWin, meta)
		if err == nil {
			return balance, false
		}
	}

	logger.Error("payout credit failed", "user_id", userID, "round_id", roundID, "amount", payout, "error", err)
	monitoring.PendingCredits.Inc()

	if pending != nil {
		pc := &domain.PendingCredit{UserID: userID, RoundID: roundID, Amount: payout}
		if perr := pending.Create(ctx, pc); perr != nil {
			logger.Error("pending credit write failed", "user_id", userID, "round_id", roundID, "error", perr)
		}
	}
	return fallbackBalance, true
}
