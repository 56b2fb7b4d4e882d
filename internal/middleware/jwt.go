package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"reels_monetization/internal/security" // Audit context
	"reels_monetization/internal/utils"    // JWT utility functions
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID    = "userID"    // uint primary key
	ContextLedgerKey = "ledgerKey" // string account key
	ContextUsername  = "username"
)

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextLedgerKey, claims.LedgerKey())
		c.Set(ContextUsername, claims.Username)
		// Audit entries written further down carry the client address
		c.Request = c.Request.WithContext(security.WithIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}
