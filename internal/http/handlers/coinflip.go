package handlers

import (
	"net/http"

	"casino_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

type CoinFlipStartRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

type CoinFlipGuessRequest struct {
	Guess string `json:"guess" binding:"required,oneof=heads tails"`
}

// CoinFlipStart debits the bet and opens a compounding coinflip round.
func (h *Handler) CoinFlipStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CoinFlipStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	g, err := h.CoinFlip.StartGame(c.Request.Context(), userID, req.Bet)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.State())
}

// CoinFlipGuess plays one flip of the active round.
func (h *Handler) CoinFlipGuess(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CoinFlipGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	side, win, g, err := h.CoinFlip.Flip(c.Request.Context(), userID, req.Guess)
	if err != nil {
		gameError(c, err)
		return
	}

	state := g.State()
	state["side"] = side
	state["win"] = win
	c.JSON(http.StatusOK, state)
}

// CoinFlipCashOut settles the active round at the compounded multiplier.
func (h *Handler) CoinFlipCashOut(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g, err := h.CoinFlip.CashOut(c.Request.Context(), userID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.State())
}

// CoinFlipState returns the active round, if any.
func (h *Handler) CoinFlipState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g := h.CoinFlip.GetActiveGame(userID)
	if g == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	state := g.State()
	state["active"] = true
	c.JSON(http.StatusOK, state)
}

// CoinFlipInfo returns the compounding schedule.
func (h *Handler) CoinFlipInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"step_multiplier": game.CoinFlipStepMultiplier(h.Rounds.RTP()),
		"max_streak":      game.CoinFlipMaxStreak,
	})
}
