package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/game"
	"casino_webapp/internal/logger"
	"casino_webapp/internal/monitoring"
	"casino_webapp/internal/rng"

	"github.com/google/uuid"
)

var ErrRoundInFlight = errors.New("round already in progress")

// HistoryRecorder persists settled rounds.
type HistoryRecorder interface {
	Create(ctx context.Context, gh *domain.GameHistory) error
}

// PendingCreditStore parks payouts that could not be credited.
type PendingCreditStore interface {
	Create(ctx context.Context, pc *domain.PendingCredit) error
}

// ResultPublisher pushes settled rounds to the live feed.
type ResultPublisher interface {
	PublishResult(res *domain.RoundResult)
}

// RoundService runs one-shot game rounds end to end: wager validation, the
// debit, the RNG draw, settlement and the credit. The wager is debited before
// any randomness is drawn; a draw error refunds the stake.
type RoundService struct {
	settler Settler
	history HistoryRecorder
	pending PendingCreditStore
	feed    ResultPublisher
	catalog *game.Catalog
	limits  game.Limits
	rtp     float64
	rand    rng.Source

	mu       sync.Mutex
	inFlight map[string]struct{} // userID:gameType
}

func NewRoundService(settler Settler, history HistoryRecorder, pending PendingCreditStore, feed ResultPublisher, catalog *game.Catalog, limits game.Limits, rtp float64, r rng.Source) *RoundService {
	return &RoundService{
		settler:  settler,
		history:  history,
		pending:  pending,
		feed:     feed,
		catalog:  catalog,
		limits:   limits,
		rtp:      rtp,
		rand:     r,
		inFlight: make(map[string]struct{}),
	}
}

func (s *RoundService) Limits() game.Limits { return s.limits }
func (s *RoundService) RTP() float64        { return s.rtp }
func (s *RoundService) Catalog() *game.Catalog {
	return s.catalog
}

// acquire blocks a second concurrent round of the same game for one user.
func (s *RoundService) acquire(userID int64, gameType domain.GameType) (func(), error) {
	key := inFlightKey(userID, gameType)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return nil, ErrRoundInFlight
	}
	s.inFlight[key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, nil
}

func inFlightKey(userID int64, gameType domain.GameType) string {
	return strconv.FormatInt(userID, 10) + ":" + string(gameType)
}

// draw is one game's RNG step: it returns the client-visible outcome and the
// exact payout for the wagered amount.
type draw func(r rng.Source) (outcome map[string]interface{}, payout int64, err error)

// run is the shared round pipeline.
func (s *RoundService) run(ctx context.Context, userID int64, gameType domain.GameType, amount int64, play draw) (*domain.RoundResult, error) {
	if err := game.ValidateWager(amount, s.limits); err != nil {
		return nil, err
	}

	release, err := s.acquire(userID, gameType)
	if err != nil {
		return nil, err
	}
	defer release()

	round := game.NewRound(uuid.New().String(), userID, gameType, amount)
	if err := round.Commit(); err != nil {
		return nil, err
	}

	meta := map[string]interface{}{"round_id": round.ID, "game": string(gameType)}
	balance, err := s.settler.Debit(ctx, userID, amount, TxTypeBet, meta)
	if err != nil {
		return nil, err
	}

	outcome, payout, err := play(s.rand)
	if err != nil {
		// Invalid draw after the debit: give the stake back
		if refunded, rerr := s.settler.Credit(ctx, userID, amount, TxTypeRefund, meta); rerr != nil {
			logger.Error("refund failed", "user_id", userID, "round_id", round.ID, "error", rerr)
		} else {
			balance = refunded
		}
		return nil, err
	}

	payout = s.limits.CapProfit(amount, payout)
	if err := round.SettlePayout(payout); err != nil {
		return nil, err
	}

	result := &domain.RoundResult{
		RoundID:     round.ID,
		GameType:    gameType,
		AmountMinor: amount,
		Multiplier:  round.Multiplier,
		PayoutMinor: payout,
		NetMinor:    round.Net(),
		Outcome:     outcome,
		Balance:     balance,
	}

	if payout > 0 {
		result.Balance, result.PayoutPending = s.credit(ctx, userID, round.ID, payout, meta, balance)
	}

	s.record(ctx, userID, gameType, amount, payout, outcome)
	monitoring.RecordRound(string(gameType), resultLabel(payout), amount, payout)
	if s.feed != nil {
		s.feed.PublishResult(result)
	}

	return result, nil
}

func (s *RoundService) credit(ctx context.Context, userID int64, roundID string, payout int64, meta map[string]interface{}, balanceAfterDebit int64) (balance int64, pendingFlag bool) {
	return creditPayout(ctx, s.settler, s.pending, userID, roundID, payout, meta, balanceAfterDebit)
}

func (s *RoundService) record(ctx context.Context, userID int64, gameType domain.GameType, amount, payout int64, details map[string]interface{}) {
	if s.history == nil {
		return
	}

	result := domain.GameResultLose
	if payout > 0 {
		result = domain.GameResultWin
	}

	gh := &domain.GameHistory{
		UserID:    userID,
		GameType:  gameType,
		Result:    result,
		BetAmount: amount,
		WinAmount: payout,
		Details:   details,
	}
	if err := s.history.Create(ctx, gh); err != nil {
		logger.Error("game history write failed", "user_id", userID, "game", gameType, "error", err)
	}
}

func resultLabel(payout int64) string {
	if payout > 0 {
		return string(domain.GameResultWin)
	}
	return string(domain.GameResultLose)
}

// PlayDice runs a single over/under dice roll.
func (s *RoundService) PlayDice(ctx context.Context, userID int64, amount int64, bet game.DiceBet) (*domain.RoundResult, error) {
	return s.run(ctx, userID, domain.GameTypeDice, amount, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := game.PlayDice(bet, s.rtp, r)
		if err != nil {
			return nil, 0, err
		}
		payout := int64(0)
		if out.Won {
			payout = game.Payout(amount, out.Multiplier)
		}
		return map[string]interface{}{
			"roll":       out.Roll,
			"target":     bet.Target,
			"over":       bet.Over,
			"won":        out.Won,
			"win_chance": out.WinChance,
			"multiplier": out.Multiplier,
		}, payout, nil
	})
}

// PlayLimbo runs a single limbo bet against a target multiplier. Targets the
// profit cap could not pay in full are rejected here, before the debit.
func (s *RoundService) PlayLimbo(ctx context.Context, userID int64, amount int64, target float64) (*domain.RoundResult, error) {
	if err := game.ValidateLimboTarget(target, amount, s.limits); err != nil {
		return nil, err
	}
	return s.run(ctx, userID, domain.GameTypeLimbo, amount, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := game.PlayLimbo(target, s.rtp, r)
		if err != nil {
			return nil, 0, err
		}
		payout := int64(0)
		if out.Won {
			payout = game.Payout(amount, out.Multiplier)
		}
		return map[string]interface{}{
			"target":      out.Target,
			"won":         out.Won,
			"win_chance":  out.WinChance,
			"crash_value": out.CrashValue,
			"multiplier":  out.Multiplier,
		}, payout, nil
	})
}

// PlayKeno draws 10 of 40 numbers against the player's picks.
func (s *RoundService) PlayKeno(ctx context.Context, userID int64, amount int64, picks []int, risk game.Risk) (*domain.RoundResult, error) {
	return s.run(ctx, userID, domain.GameTypeKeno, amount, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := game.PlayKeno(picks, risk, r)
		if err != nil {
			return nil, 0, err
		}
		return map[string]interface{}{
			"picks":      out.Picks,
			"drawn":      out.Drawn,
			"hits":       out.Hits,
			"risk":       risk,
			"multiplier": out.Multiplier,
		}, game.Payout(amount, out.Multiplier), nil
	})
}

// PlayWheel spins a wheel of the given size and risk.
func (s *RoundService) PlayWheel(ctx context.Context, userID int64, amount int64, segments int, risk game.Risk) (*domain.RoundResult, error) {
	return s.run(ctx, userID, domain.GameTypeWheel, amount, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := game.PlayWheel(segments, risk, s.rtp, r)
		if err != nil {
			return nil, 0, err
		}
		return map[string]interface{}{
			"segments":   out.Segments,
			"risk":       out.Risk,
			"index":      out.Index,
			"multiplier": out.Multiplier,
		}, game.Payout(amount, out.Multiplier), nil
	})
}

// PlayPlinko drops one ball down the board.
func (s *RoundService) PlayPlinko(ctx context.Context, userID int64, amount int64, rows int, risk game.Risk) (*domain.RoundResult, error) {
	return s.run(ctx, userID, domain.GameTypePlinko, amount, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := game.PlayPlinko(rows, risk, r)
		if err != nil {
			return nil, 0, err
		}
		return map[string]interface{}{
			"rows":       out.Rows,
			"risk":       out.Risk,
			"path":       out.Path,
			"bucket":     out.Bucket,
			"multiplier": out.Multiplier,
		}, game.Payout(amount, out.Multiplier), nil
	})
}

// PlayRoulette settles a set of bets against a single European wheel spin.
// The wagered amount is the sum of all placed bets.
func (s *RoundService) PlayRoulette(ctx context.Context, userID int64, bets []game.RouletteBet) (*domain.RoundResult, error) {
	var total int64
	for _, b := range bets {
		total += b.Amount
	}

	return s.run(ctx, userID, domain.GameTypeRoulette, total, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := game.PlayRoulette(bets, r)
		if err != nil {
			return nil, 0, err
		}
		return map[string]interface{}{
			"pocket":       out.Pocket,
			"color":        out.Color,
			"winning_bets": out.WinningBets,
			"payouts":      out.Payouts,
		}, out.TotalPayout, nil
	})
}

// OpenCase opens a priced case `count` times; the stake is price x count.
func (s *RoundService) OpenCase(ctx context.Context, userID int64, caseID string, count int) (*domain.RoundResult, error) {
	def, ok := s.catalog.Get(caseID)
	if !ok {
		return nil, game.ErrUnknownCase
	}
	if count < game.CaseMinOpens || count > game.CaseMaxOpens {
		return nil, game.ErrInvalidOpenCount
	}
	total := def.PriceMinor * int64(count)

	return s.run(ctx, userID, domain.GameTypeCase, total, func(r rng.Source) (map[string]interface{}, int64, error) {
		out, err := s.catalog.OpenCase(caseID, count, r)
		if err != nil {
			return nil, 0, err
		}
		return map[string]interface{}{
			"case_id": out.CaseID,
			"opens":   out.Opens,
			"items":   out.Items,
		}, out.TotalPayout, nil
	})
}
