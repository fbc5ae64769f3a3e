package service

import (
	"context"
	"errors"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// BalanceService handles all balance operations
type BalanceService struct {
	db              *pgxpool.Pool
	transactionRepo *repository.TransactionRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(db *pgxpool.Pool) *BalanceService {
	return &BalanceService{
		db:              db,
		transactionRepo: repository.NewTransactionRepository(db),
	}
}

// GetBalance returns user's current balance
func (s *BalanceService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

// Debit deducts amount from user's balance. Balance check and deduction run
// under a row lock; the ledger row is written in the same transaction.
func (s *BalanceService) Debit(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (newBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if balance < amount {
		return 0, ErrInsufficientFunds
	}

	err = tx.QueryRow(ctx, `UPDATE users SET balance = balance - $1 WHERE id = $2 RETURNING balance`, amount, userID).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	transaction := &domain.Transaction{
		UserID: userID,
		Type:   txType,
		Amount: -amount,
		Meta:   meta,
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, transaction); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Credit adds amount to user's balance and writes the ledger row atomically.
func (s *BalanceService) Credit(ctx context.Context, userID int64, amount int64, txType string, meta map[string]interface{}) (newBalance int64, err error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`, amount, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	transaction := &domain.Transaction{
		UserID: userID,
		Type:   txType,
		Amount: amount,
		Meta:   meta,
	}
	if err = s.transactionRepo.CreateWithTx(ctx, tx, transaction); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// GetTransactionHistory returns user's transaction history
func (s *BalanceService) GetTransactionHistory(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserID(ctx, userID, limit)
}
