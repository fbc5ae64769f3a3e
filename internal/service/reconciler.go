package service

import (
	"context"
	"time"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/logger"
)

// PendingCreditQueue reads back parked payouts for reconciliation.
type PendingCreditQueue interface {
	ListUnresolved(ctx context.Context, limit int) ([]*domain.PendingCredit, error)
	Resolve(ctx context.Context, id int64) error
}

// Reconciler retries payouts that could not be credited at settlement time.
// A credit is attempted once per sweep; the row is resolved only after the
// credit lands, so a crashed sweep retries rather than losing the payout.
type Reconciler struct {
	settler  Settler
	queue    PendingCreditQueue
	interval time.Duration
}

func NewReconciler(settler Settler, queue PendingCreditQueue, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reconciler{settler: settler, queue: queue, interval: interval}
}

// Run sweeps until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep retries every unresolved credit once. Returns the number credited.
func (r *Reconciler) Sweep(ctx context.Context) int {
	rows, err := r.queue.ListUnresolved(ctx, 100)
	if err != nil {
		logger.Error("pending credit list failed", "error", err)
		return 0
	}

	credited := 0
	for _, pc := range rows {
		meta := map[string]interface{}{"round_id": pc.RoundID, "reconciled": true}
		if _, err := r.settler.Credit(ctx, pc.UserID, pc.Amount, TxTypeWin, meta); err != nil {
			logger.Warn("pending credit retry failed", "user_id", pc.UserID, "round_id", pc.RoundID, "error", err)
			continue
		}
		if err := r.queue.Resolve(ctx, pc.ID); err != nil {
			logger.Error("pending credit resolve failed", "id", pc.ID, "error", err)
			continue
		}
		credited++
		logger.Info("pending credit reconciled", "user_id", pc.UserID, "round_id", pc.RoundID, "amount", pc.Amount)
	}
	return credited
}
