package handlers

import (
	"errors"
	"net/http"

	"casino_webapp/internal/domain"
	"casino_webapp/internal/logger"
	"casino_webapp/internal/repository"
	"casino_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
}

type AuthResponse struct {
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
	Created bool         `json:"created"`
}

// Auth registers the username on first login and returns a JWT. New accounts
// start with the configured balance.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	created := false

	user, err := h.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		user = &domain.User{Username: req.Username}
		if err := h.UserRepo.Create(ctx, user, 0); err != nil {
			logger.Error("user create failed", "username", req.Username, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		created = true

		// Start balance goes through the ledger like any other credit
		if h.StartBalance > 0 {
			balance, err := h.Balance.Credit(ctx, user.ID, h.StartBalance, service.TxTypeSignup, nil)
			if err != nil {
				logger.Error("signup bonus credit failed", "user_id", user.ID, "error", err)
			} else {
				user.Balance = balance
			}
		}
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user, Created: created})
}
