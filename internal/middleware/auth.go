package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/session"
)

const (
	CashierIDKey   = "cashier_id"
	CashierNameKey = "cashier_name"
	CashierRoleKey = "cashier_role"
)

// SessionAuth validates the terminal UI token issued at sign-in and puts
// the cashier identity on the gin context. Requests without a valid
// bearer token are rejected; the platform's own tokens never pass
// through here.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := session.ParseToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session token"})
			return
		}

		c.Set(CashierIDKey, claims.UserID)
		c.Set(CashierNameKey, claims.Username)
		c.Set(CashierRoleKey, claims.Role)
		c.Next()
	}
}

// CashierID returns the authenticated cashier's id, or "" before
// SessionAuth has run.
func CashierID(c *gin.Context) string {
	return c.GetString(CashierIDKey)
}
