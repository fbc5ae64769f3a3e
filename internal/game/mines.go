package game

import (
	"errors"
	"sync"
	"time"

	"casino_webapp/internal/rng"
)

// MinesGame is a progressive single-player mines round. The player reveals
// cells one by one and may cash out at the current multiplier; hitting a
// mine settles the round with zero payout.
type MinesGame struct {
	ID             string     `json:"id"`
	UserID         int64      `json:"user_id"`
	BoardSize      int        `json:"board_size"`
	MinesCount     int        `json:"mines_count"`
	Bet            int64      `json:"bet"`
	Mines          []int      `json:"-"` // hidden from client until settled
	RevealedCells  []int      `json:"revealed_cells"`
	Multiplier     float64    `json:"multiplier"`
	NextMultiplier float64    `json:"next_multiplier"`
	Status         string     `json:"status"`
	WinAmount      int64      `json:"win_amount"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`

	rtp float64
	mu  sync.RWMutex
}

const (
	MinesBoardSize = 25 // 5x5 grid
	MinesMinCount  = 1
	MinesMaxCount  = 24

	MinesStatusActive    = "active"
	MinesStatusCashedOut = "cashed_out"
	MinesStatusExploded  = "exploded"
)

var (
	ErrInvalidMinesCount = errors.New("mines count must be between 1 and 24")
	ErrGameNotActive     = errors.New("game is not active")
	ErrCellOutOfRange    = errors.New("invalid cell position")
	ErrCellRevealed      = errors.New("cell already revealed")
	ErrNothingToCashOut  = errors.New("must reveal at least one cell before cashing out")
)

// NewMinesGame places mines via a Fisher-Yates shuffle of the full board and
// takes the first MinesCount positions.
func NewMinesGame(id string, userID int64, bet int64, minesCount int, rtp float64, r rng.Source) (*MinesGame, error) {
	if minesCount < MinesMinCount || minesCount > MinesMaxCount {
		return nil, ErrInvalidMinesCount
	}
	if bet <= 0 {
		return nil, ErrInvalidWagerAmount
	}

	cells := make([]int, MinesBoardSize)
	for i := range cells {
		cells[i] = i
	}
	rng.Shuffle(r, len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	g := &MinesGame{
		ID:            id,
		UserID:        userID,
		BoardSize:     MinesBoardSize,
		MinesCount:    minesCount,
		Bet:           bet,
		Mines:         cells[:minesCount],
		RevealedCells: []int{},
		Multiplier:    1.0,
		Status:        MinesStatusActive,
		CreatedAt:     time.Now(),
		rtp:           rtp,
	}
	g.NextMultiplier = MinesMultiplier(minesCount, len(g.RevealedCells)+1, rtp)
	return g, nil
}

// MinesMultiplier returns the accrued multiplier after `revealed` safe picks
// with `minesCount` mines on a 25-cell board:
//
//	M(p) = prod_{i=0}^{p-1} rtp * N / (N - k - i)
func MinesMultiplier(minesCount, revealed int, rtp float64) float64 {
	safe := MinesBoardSize - minesCount
	multiplier := 1.0
	for i := 0; i < revealed && i < safe; i++ {
		multiplier *= rtp * float64(MinesBoardSize) / float64(safe-i)
	}
	return multiplier
}

// Reveal opens a cell. Returns whether a mine was hit.
func (g *MinesGame) Reveal(cell int) (hitMine bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != MinesStatusActive {
		return false, ErrGameNotActive
	}
	if cell < 0 || cell >= g.BoardSize {
		return false, ErrCellOutOfRange
	}
	for _, c := range g.RevealedCells {
		if c == cell {
			return false, ErrCellRevealed
		}
	}

	for _, m := range g.Mines {
		if m == cell {
			g.Status = MinesStatusExploded
			g.WinAmount = 0
			now := time.Now()
			g.FinishedAt = &now
			return true, nil
		}
	}

	g.RevealedCells = append(g.RevealedCells, cell)
	g.Multiplier = MinesMultiplier(g.MinesCount, len(g.RevealedCells), g.rtp)
	g.NextMultiplier = MinesMultiplier(g.MinesCount, len(g.RevealedCells)+1, g.rtp)

	// Auto cashout once every safe cell is open
	if len(g.RevealedCells) >= g.BoardSize-g.MinesCount {
		g.Status = MinesStatusCashedOut
		g.WinAmount = Payout(g.Bet, g.Multiplier)
		now := time.Now()
		g.FinishedAt = &now
	}
	return false, nil
}

// CashOut settles the round at the current accrued multiplier.
func (g *MinesGame) CashOut() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != MinesStatusActive {
		return 0, ErrGameNotActive
	}
	if len(g.RevealedCells) == 0 {
		return 0, ErrNothingToCashOut
	}

	g.Status = MinesStatusCashedOut
	g.WinAmount = Payout(g.Bet, g.Multiplier)
	now := time.Now()
	g.FinishedAt = &now
	return g.WinAmount, nil
}

// IsActive reports whether the round still accepts reveals.
func (g *MinesGame) IsActive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.Status == MinesStatusActive
}

// State returns the client-safe view of the round. Mine positions are only
// included once the round is over.
func (g *MinesGame) State() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := map[string]interface{}{
		"id":              g.ID,
		"bet":             g.Bet,
		"board_size":      g.BoardSize,
		"mines_count":     g.MinesCount,
		"revealed_cells":  g.RevealedCells,
		"multiplier":      g.Multiplier,
		"next_multiplier": g.NextMultiplier,
		"status":          g.Status,
		"win_amount":      g.WinAmount,
		"potential_win":   Payout(g.Bet, g.Multiplier),
	}
	if g.Status != MinesStatusActive {
		state["mines"] = g.Mines
	}
	return state
}
