package game

import (
	"math"
	"sync"
	"time"

	"casino_webapp/internal/rng"
)

// crashGrowthScaleMs drives the display curve: multiplier = exp(elapsed/5000ms).
const crashGrowthScaleMs = 5000.0

// crashBuckets is the hand-tuned heavy-tailed piecewise distribution. Each
// bucket covers a cumulative slice of a uniform [0,100) draw and maps to a
// multiplier range. The remainder (~49.27%) is a cubic skew toward 1.01-2.0.
var crashBuckets = []struct {
	cumulative float64
	lo, hi     float64
}{
	{0.10, 1000, 10000},
	{2.08, 50, 1000},  // +1.98%
	{7.03, 20, 50},    // +4.95%
	{16.93, 10, 20},   // +9.90%
	{30.93, 7, 10},    // +14.0%
	{50.73, 5, 7},     // +19.80%
}

// CrashPoint draws the pre-determined multiplier at which a crash round
// ends. With probability 1% the round busts instantly at 1.00.
func CrashPoint(r rng.Source) float64 {
	if r.Float64()*100 < 1 {
		return 1.00
	}

	u := r.Float64() * 100
	for _, b := range crashBuckets {
		if u < b.cumulative {
			return floor2(b.lo + r.Float64()*(b.hi-b.lo))
		}
	}

	// Bulk of the mass: cubic skew toward the low end
	u2 := r.Float64()
	return floor2(1.01 + u2*u2*u2*3.99)
}

// CrashMultiplierAt returns the display multiplier after the given elapsed
// time, floored to 2 decimals.
func CrashMultiplierAt(elapsed time.Duration) float64 {
	if elapsed < 0 {
		return 1.0
	}
	return floor2(math.Exp(float64(elapsed.Milliseconds()) / crashGrowthScaleMs))
}

const (
	CrashStatusActive    = "active"
	CrashStatusCashedOut = "cashed_out"
	CrashStatusCrashed   = "crashed"
)

// CrashRound is one player's crash bet: the crash point is drawn at start
// and kept hidden; the player races the curve and may cash out before it.
type CrashRound struct {
	ID         string     `json:"id"`
	UserID     int64      `json:"user_id"`
	Bet        int64      `json:"bet"`
	CrashPoint float64    `json:"-"` // revealed only once the round ends
	StartedAt  time.Time  `json:"started_at"`
	Status     string     `json:"status"`
	Multiplier float64    `json:"multiplier"` // locked-in value after cashout
	WinAmount  int64      `json:"win_amount"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	mu sync.Mutex
}

func NewCrashRound(id string, userID int64, bet int64, r rng.Source) *CrashRound {
	return &CrashRound{
		ID:         id,
		UserID:     userID,
		Bet:        bet,
		CrashPoint: CrashPoint(r),
		StartedAt:  time.Now(),
		Status:     CrashStatusActive,
		Multiplier: 1.0,
	}
}

// CurrentMultiplier returns the curve value at `now`, capped at the crash
// point.
func (g *CrashRound) CurrentMultiplier(now time.Time) float64 {
	m := CrashMultiplierAt(now.Sub(g.StartedAt))
	if m > g.CrashPoint {
		return g.CrashPoint
	}
	return m
}

// Crashed reports whether the curve already passed the crash point at `now`.
func (g *CrashRound) Crashed(now time.Time) bool {
	return CrashMultiplierAt(now.Sub(g.StartedAt)) >= g.CrashPoint
}

// CashOut locks in the curve value at `now`. If the crash point was already
// reached the round settles as crashed with zero payout.
func (g *CrashRound) CashOut(now time.Time) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != CrashStatusActive {
		return 0, ErrGameNotActive
	}

	t := now
	g.FinishedAt = &t

	if g.Crashed(now) {
		g.Status = CrashStatusCrashed
		g.Multiplier = 0
		g.WinAmount = 0
		return 0, nil
	}

	g.Status = CrashStatusCashedOut
	g.Multiplier = g.CurrentMultiplier(now)
	g.WinAmount = Payout(g.Bet, g.Multiplier)
	return g.WinAmount, nil
}

// MarkCrashed finalizes a round whose curve ran past the crash point.
func (g *CrashRound) MarkCrashed(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != CrashStatusActive || !g.Crashed(now) {
		return false
	}
	t := now
	g.FinishedAt = &t
	g.Status = CrashStatusCrashed
	g.Multiplier = 0
	g.WinAmount = 0
	return true
}

// IsActive reports whether the round is still racing the curve.
func (g *CrashRound) IsActive() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Status == CrashStatusActive
}

// State returns the client-safe view at `now`.
func (g *CrashRound) State(now time.Time) map[string]interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := map[string]interface{}{
		"id":         g.ID,
		"bet":        g.Bet,
		"status":     g.Status,
		"started_at": g.StartedAt,
		"win_amount": g.WinAmount,
	}
	switch g.Status {
	case CrashStatusActive:
		if g.Crashed(now) {
			state["status"] = CrashStatusCrashed
			state["crash_point"] = g.CrashPoint
			state["multiplier"] = 0.0
		} else {
			state["multiplier"] = g.CurrentMultiplier(now)
		}
	default:
		state["crash_point"] = g.CrashPoint
		state["multiplier"] = g.Multiplier
	}
	return state
}
