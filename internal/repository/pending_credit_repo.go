package repository

import (
	"context"

	"casino_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PendingCreditRepository struct {
	db *pgxpool.Pool
}

func NewPendingCreditRepository(db *pgxpool.Pool) *PendingCreditRepository {
	return &PendingCreditRepository{db: db}
}

// Create фиксирует незачисленный выигрыш для последующей сверки
func (r *PendingCreditRepository) Create(ctx context.Context, pc *domain.PendingCredit) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO pending_credits (user_id, round_id, amount)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		pc.UserID, pc.RoundID, pc.Amount,
	).Scan(&pc.ID, &pc.CreatedAt)
}

// ListUnresolved возвращает невыплаченные выигрыши
func (r *PendingCreditRepository) ListUnresolved(ctx context.Context, limit int) ([]*domain.PendingCredit, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, round_id, amount, resolved, created_at
		 FROM pending_credits
		 WHERE resolved = false
		 ORDER BY created_at
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.PendingCredit
	for rows.Next() {
		var pc domain.PendingCredit
		if err := rows.Scan(&pc.ID, &pc.UserID, &pc.RoundID, &pc.Amount, &pc.Resolved, &pc.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &pc)
	}
	return result, rows.Err()
}

// Resolve помечает выигрыш как зачисленный
func (r *PendingCreditRepository) Resolve(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE pending_credits SET resolved = true WHERE id = $1`, id)
	return err
}
