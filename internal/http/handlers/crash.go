package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type CrashStartRequest struct {
	Bet int64 `json:"bet" binding:"required,min=1"`
}

// CrashStart debits the bet and starts the curve. The crash point stays
// server-side until the round ends.
func (h *Handler) CrashStart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CrashStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	g, err := h.Crash.StartGame(c.Request.Context(), userID, req.Bet)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.State(time.Now()))
}

// CrashCashOut locks in the current multiplier, racing the crash point.
func (h *Handler) CrashCashOut(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g, err := h.Crash.CashOut(c.Request.Context(), userID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, g.State(time.Now()))
}

// CrashState returns the live curve value for the active round.
func (h *Handler) CrashState(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	g := h.Crash.GetActiveGame(userID)
	if g == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	state := g.State(time.Now())
	state["active"] = true
	c.JSON(http.StatusOK, state)
}
