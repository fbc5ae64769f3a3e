package middleware

import (
	"net/http"
	"strings"

	"casino_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT validates the Bearer token and puts user_id into the gin context.
// WebSocket clients may pass the token as a query parameter instead.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		auth := c.GetHeader("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
