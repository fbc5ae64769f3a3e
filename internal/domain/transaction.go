package domain

import "time"

// Transaction - строка бухгалтерской книги; Amount отрицательный для дебета
type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// PendingCredit - выигрыш, который не удалось зачислить; ждёт сверки
type PendingCredit struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	RoundID   string    `db:"round_id" json:"round_id"`
	Amount    int64     `db:"amount" json:"amount"`
	Resolved  bool      `db:"resolved" json:"resolved"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
