package handlers

import (
	"net/http"
	"strconv"

	"casino_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

// One-shot game endpoints. Each request runs a full round: debit, draw,
// settle, credit. Amounts are minor currency units.

type DiceRequest struct {
	Bet    int64   `json:"bet" binding:"required,min=1"`
	Target float64 `json:"target" binding:"required"`
	Over   bool    `json:"over"`
}

// Dice handles a single over/under roll.
func (h *Handler) Dice(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req DiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.PlayDice(c.Request.Context(), userID, req.Bet, game.DiceBet{Target: req.Target, Over: req.Over})
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DiceInfo returns dice game configuration.
func (h *Handler) DiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"min_target":     game.DiceMinTarget,
		"max_target":     game.DiceMaxTarget,
		"rtp":            h.Rounds.RTP(),
		"max_multiplier": game.DiceMultiplier(game.DiceMaxTarget, false, h.Rounds.RTP()),
	})
}

type LimboRequest struct {
	Bet    int64   `json:"bet" binding:"required,min=1"`
	Target float64 `json:"target" binding:"required"`
}

// Limbo handles a single limbo bet.
func (h *Handler) Limbo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req LimboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.PlayLimbo(c.Request.Context(), userID, req.Bet, req.Target)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// LimboInfo returns limbo game configuration.
func (h *Handler) LimboInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"min_target": game.LimboMinTarget,
		"max_target": game.LimboMaxTarget,
		"rtp":        h.Rounds.RTP(),
	})
}

type KenoRequest struct {
	Bet   int64     `json:"bet" binding:"required,min=1"`
	Picks []int     `json:"picks" binding:"required"`
	Risk  game.Risk `json:"risk" binding:"required"`
}

// Keno handles a single keno draw.
func (h *Handler) Keno(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req KenoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.PlayKeno(c.Request.Context(), userID, req.Bet, req.Picks, req.Risk)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// KenoInfo returns keno board and pick bounds.
func (h *Handler) KenoInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"board_size": game.KenoBoardSize,
		"draw_count": game.KenoDrawCount,
		"min_picks":  game.KenoMinPicks,
		"max_picks":  game.KenoMaxPicks,
		"risks":      []game.Risk{game.RiskLow, game.RiskMedium, game.RiskHigh},
	})
}

type WheelRequest struct {
	Bet      int64     `json:"bet" binding:"required,min=1"`
	Segments int       `json:"segments" binding:"required"`
	Risk     game.Risk `json:"risk" binding:"required"`
}

// Wheel handles a single wheel spin.
func (h *Handler) Wheel(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req WheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.PlayWheel(c.Request.Context(), userID, req.Bet, req.Segments, req.Risk)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// WheelInfo returns the multiplier layout for a wheel configuration.
func (h *Handler) WheelInfo(c *gin.Context) {
	segments := 10
	if v, ok := c.GetQuery("segments"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			segments = n
		}
	}
	risk := game.Risk(c.DefaultQuery("risk", string(game.RiskLow)))

	wheel, err := game.BuildWheel(segments, risk, h.Rounds.RTP())
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"segments":    segments,
		"risk":        risk,
		"multipliers": wheel,
	})
}

type PlinkoRequest struct {
	Bet  int64     `json:"bet" binding:"required,min=1"`
	Rows int       `json:"rows" binding:"required"`
	Risk game.Risk `json:"risk" binding:"required"`
}

// Plinko drops a single ball.
func (h *Handler) Plinko(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req PlinkoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.PlayPlinko(c.Request.Context(), userID, req.Bet, req.Rows, req.Risk)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// PlinkoInfo returns plinko bounds.
func (h *Handler) PlinkoInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"min_rows": game.PlinkoMinRows,
		"max_rows": game.PlinkoMaxRows,
		"risks":    []game.Risk{game.RiskLow, game.RiskMedium, game.RiskHigh},
	})
}

type RouletteRequest struct {
	Bets []game.RouletteBet `json:"bets" binding:"required"`
}

// Roulette settles a set of bets against one European wheel spin.
func (h *Handler) Roulette(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req RouletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.PlayRoulette(c.Request.Context(), userID, req.Bets)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

type CaseOpenRequest struct {
	CaseID string `json:"case_id" binding:"required"`
	Count  int    `json:"count" binding:"required,min=1,max=5"`
}

// Cases lists the case catalog with prices and item odds.
func (h *Handler) Cases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cases": h.Rounds.Catalog().List()})
}

// CaseOpen opens a case one or more times.
func (h *Handler) CaseOpen(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CaseOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Rounds.OpenCase(c.Request.Context(), userID, req.CaseID, req.Count)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GameLimits exposes the shared wager bounds.
func (h *Handler) GameLimits(c *gin.Context) {
	limits := h.Rounds.Limits()
	c.JSON(http.StatusOK, gin.H{
		"min_bet":    limits.MinBet,
		"max_bet":    limits.MaxBet,
		"max_profit": limits.MaxProfit,
		"rtp":        h.Rounds.RTP(),
	})
}
