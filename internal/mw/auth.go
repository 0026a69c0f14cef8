package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alumni-portal-backend/internal/auth"
)

// Context keys set by the Auth middleware.
const (
	ContextAccountID   = "accountId"
	ContextAccountType = "accountType"
)

// Auth is the authorization gate: it reads a bearer token from the
// Authorization header, verifies it, and attaches the account identity to the
// request context. It performs no role check.
func Auth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextAccountID, accountID)
		c.Set(ContextAccountType, claims.AccountType)
		c.Next()
	}
}

// Account returns the authenticated account id and type set by Auth.
func Account(c *gin.Context) (int64, string, bool) {
	id, ok := c.Get(ContextAccountID)
	if !ok {
		return 0, "", false
	}
	typ, ok := c.Get(ContextAccountType)
	if !ok {
		return 0, "", false
	}
	return id.(int64), typ.(string), true
}
