package repository

import (
	"context"
	"errors"

	"casino_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, balance, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Balance, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, balance, created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Balance, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create регистрирует пользователя со стартовым балансом
func (r *UserRepository) Create(ctx context.Context, u *domain.User, startBalance int64) error {
	u.Balance = startBalance
	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, balance)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		u.Username,
		startBalance,
	).Scan(&u.ID, &u.CreatedAt)
}
