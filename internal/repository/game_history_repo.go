package repository

import (
	"context"
	"encoding/json"
	"time"

	"casino_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

// Create сохраняет запись игры в историю
func (r *GameHistoryRepository) Create(ctx context.Context, gh *domain.GameHistory) error {
	detailsJSON, err := json.Marshal(gh.Details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO game_history (user_id, game_type, result, bet_amount, win_amount, details)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		gh.UserID,
		gh.GameType,
		gh.Result,
		gh.BetAmount,
		gh.WinAmount,
		detailsJSON,
	).Scan(&gh.ID, &gh.CreatedAt)
}

// GetByUser возвращает историю игр пользователя
func (r *GameHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*domain.GameHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, game_type, result, bet_amount, win_amount, details, created_at
		 FROM game_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// GetByUserAndType возвращает историю игр определённого типа
func (r *GameHistoryRepository) GetByUserAndType(ctx context.Context, userID int64, gameType domain.GameType, limit int) ([]*domain.GameHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, game_type, result, bet_amount, win_amount, details, created_at
		 FROM game_history
		 WHERE user_id = $1 AND game_type = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, gameType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// UserStats - статистика пользователя
type UserStats struct {
	UserID     int64 `json:"user_id"`
	TotalGames int   `json:"total_games"`
	Wins       int   `json:"wins"`
	Losses     int   `json:"losses"`
	TotalBet   int64 `json:"total_bet"`
	TotalWon   int64 `json:"total_won"`
}

// GetUserStats возвращает статистику пользователя за период
func (r *GameHistoryRepository) GetUserStats(ctx context.Context, userID int64, since time.Time) (*UserStats, error) {
	stats := &UserStats{UserID: userID}

	err := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*) as total_games,
			COUNT(*) FILTER (WHERE result = 'win') as wins,
			COUNT(*) FILTER (WHERE result = 'lose') as losses,
			COALESCE(SUM(bet_amount), 0) as total_bet,
			COALESCE(SUM(win_amount), 0) as total_won
		 FROM game_history
		 WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses, &stats.TotalBet, &stats.TotalWon)

	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *GameHistoryRepository) scanRows(rows pgx.Rows) ([]*domain.GameHistory, error) {
	var result []*domain.GameHistory

	for rows.Next() {
		var (
			gh          domain.GameHistory
			detailsJSON []byte
		)

		if err := rows.Scan(
			&gh.ID, &gh.UserID, &gh.GameType, &gh.Result,
			&gh.BetAmount, &gh.WinAmount, &detailsJSON, &gh.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &gh.Details)
		}

		result = append(result, &gh)
	}

	return result, rows.Err()
}
