package handlers

import (
	"net/http"
	"strconv"

	"casino_webapp/internal/game"

	"github.com/gin-gonic/gin"
)

type MinesStartRequest struct {
	Bet        int64 `json:"bet" binding:"required,min=1"`
	MinesCount int   `json:"mines_count" binding:"required,min=1,max=24"`
}

type MinesRevealRequest struct {
	Cell int `json:"cell" binding:"min=0,max=24"`
}

// MinesStart debits the bet and opens a new mines round.
func (h *Handler) MinesStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req MinesStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	g, err := h.Mines.StartGame(c.Request.Context(), userID, req.Bet, req.MinesCount)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.State())
}

// MinesReveal opens one cell of the active round.
func (h *Handler) MinesReveal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req MinesRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	hitMine, g, err := h.Mines.RevealCell(c.Request.Context(), userID, req.Cell)
	if err != nil {
		gameError(c, err)
		return
	}

	state := g.State()
	state["hit_mine"] = hitMine
	c.JSON(http.StatusOK, state)
}

// MinesCashOut settles the active round at the accrued multiplier.
func (h *Handler) MinesCashOut(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g, err := h.Mines.CashOut(c.Request.Context(), userID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.State())
}

// MinesState returns the active round, if any.
func (h *Handler) MinesState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g := h.Mines.GetActiveGame(userID)
	if g == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	state := g.State()
	state["active"] = true
	c.JSON(http.StatusOK, state)
}

// MinesInfo returns board bounds and the multiplier ladder.
func (h *Handler) MinesInfo(c *gin.Context) {
	rtp := h.Rounds.RTP()

	// Первые шаги лестницы для типовых настроек
	ladder := make(map[string][]float64)
	for _, count := range []int{1, 3, 5, 10, 24} {
		steps := make([]float64, 0, 5)
		for revealed := 1; revealed <= 5 && revealed <= game.MinesBoardSize-count; revealed++ {
			steps = append(steps, game.MinesMultiplier(count, revealed, rtp))
		}
		ladder[strconv.Itoa(count)] = steps
	}

	c.JSON(http.StatusOK, gin.H{
		"board_size": game.MinesBoardSize,
		"min_mines":  game.MinesMinCount,
		"max_mines":  game.MinesMaxCount,
		"rtp":        rtp,
		"ladder":     ladder,
	})
}
