package service

import (
	"context"
	"sync"
	"testing"

	"casino_webapp/internal/domain"
)

type fakePendingQueue struct {
	mu       sync.Mutex
	rows     []*domain.PendingCredit
	resolved []int64
}

func (f *fakePendingQueue) ListUnresolved(ctx context.Context, limit int) ([]*domain.PendingCredit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.PendingCredit
	for _, pc := range f.rows {
		if !pc.Resolved {
			out = append(out, pc)
		}
	}
	return out, nil
}

func (f *fakePendingQueue) Resolve(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pc := range f.rows {
		if pc.ID == id {
			pc.Resolved = true
		}
	}
	f.resolved = append(f.resolved, id)
	return nil
}

func TestReconcilerCreditsParkedPayouts(t *testing.T) {
	settler := &fakeSettler{balance: 5000}
	queue := &fakePendingQueue{rows: []*domain.PendingCredit{
		{ID: 1, UserID: 7, RoundID: "r-1", Amount: 1980},
		{ID: 2, UserID: 8, RoundID: "r-2", Amount: 500},
	}}

	rec := NewReconciler(settler, queue, 0)
	if n := rec.Sweep(context.Background()); n != 2 {
		t.Fatalf("credited = %d; want 2", n)
	}

	if settler.balance != 5000+1980+500 {
		t.Fatalf("balance = %d; want 7480", settler.balance)
	}
	if len(queue.resolved) != 2 {
		t.Fatalf("resolved = %v; want both rows", queue.resolved)
	}

	// Nothing left on the second sweep
	if n := rec.Sweep(context.Background()); n != 0 {
		t.Fatalf("second sweep credited = %d; want 0", n)
	}
}

func TestReconcilerKeepsRowOnCreditFailure(t *testing.T) {
	settler := &fakeSettler{balance: 5000, failCredit: true}
	queue := &fakePendingQueue{rows: []*domain.PendingCredit{
		{ID: 1, UserID: 7, RoundID: "r-1", Amount: 1980},
	}}

	rec := NewReconciler(settler, queue, 0)
	if n := rec.Sweep(context.Background()); n != 0 {
		t.Fatalf("credited = %d; want 0", n)
	}
	if len(queue.resolved) != 0 {
		t.Fatal("row resolved despite failed credit")
	}
	if settler.balance != 5000 {
		t.Fatalf("balance = %d; want untouched 5000", settler.balance)
	}
}
