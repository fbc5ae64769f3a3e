package ws

import "casino_webapp/internal/domain"

const (
	// server - client
	MsgReady        = "ready"
	MsgRoundSettled = "round_settled"
)

type feedMessage struct {
	Type       string          `json:"type"`
	GameType   domain.GameType `json:"game_type,omitempty"`
	Multiplier float64         `json:"multiplier,omitempty"`
	Payout     int64           `json:"payout,omitempty"`
	Won        bool            `json:"won"`
}
