package handlers

import (
	"net/http"
	"strconv"

	"casino_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user with the current balance.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		gameError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// MyGames returns the user's recent game history, optionally filtered by game.
func (h *Handler) MyGames(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	var (
		games interface{}
		err   error
	)
	if gt := c.Query("game"); gt != "" {
		games, err = h.GameHistoryRepo.GetByUserAndType(c.Request.Context(), userID, domain.GameType(gt), limit)
	} else {
		games, err = h.GameHistoryRepo.GetByUser(c.Request.Context(), userID, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games})
}

// MyTransactions returns the user's ledger entries.
func (h *Handler) MyTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	txs, err := h.Balance.GetTransactionHistory(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
