package domain

import "time"

// GameType - тип игры
type GameType string

const (
	GameTypeDice     GameType = "dice"
	GameTypeLimbo    GameType = "limbo"
	GameTypeMines    GameType = "mines"
	GameTypeKeno     GameType = "keno"
	GameTypeWheel    GameType = "wheel"
	GameTypePlinko   GameType = "plinko"
	GameTypeCrash    GameType = "crash"
	GameTypeCoinflip GameType = "coinflip"
	GameTypeRoulette GameType = "roulette"
	GameTypeCase     GameType = "case"
)

// RoundState - жизненный цикл раунда
type RoundState string

const (
	RoundIdle      RoundState = "idle"
	RoundCommitted RoundState = "committed"
	RoundResolving RoundState = "resolving"
	RoundSettled   RoundState = "settled"
)

// GameResult - результат игры
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
)

// RoundResult is the settled outcome of a single round, handed to the caller
// for display. Amounts are in minor currency units.
type RoundResult struct {
	RoundID       string                 `json:"round_id"`
	GameType      GameType               `json:"game_type"`
	AmountMinor   int64                  `json:"amount"`
	Multiplier    float64                `json:"multiplier"`
	PayoutMinor   int64                  `json:"payout"`
	NetMinor      int64                  `json:"net"`
	PayoutPending bool                   `json:"payout_pending,omitempty"`
	Outcome       map[string]interface{} `json:"outcome,omitempty"`
	Balance       int64                  `json:"balance"`
}

// GameHistory - запись истории игры
type GameHistory struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	GameType  GameType               `db:"game_type" json:"game_type"`
	Result    GameResult             `db:"result" json:"result"`
	BetAmount int64                  `db:"bet_amount" json:"bet_amount"`
	WinAmount int64                  `db:"win_amount" json:"win_amount"`
	Details   map[string]interface{} `db:"details" json:"details,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
