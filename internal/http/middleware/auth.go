// Package middleware provides request middleware that depends on domain
// packages and therefore cannot live in platform/httpkit.
package middleware

import (
	"net/http"
	"strings"

	"tenantcore/internal/credentials"
	"tenantcore/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// RequireAuth validates the bearer token on the request and stores the
// subject user ID in the gin context. Expired and malformed tokens are both
// rejected with 401.
func RequireAuth(tokens *credentials.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(httpkit.ContextUserIDKey, claims.Subject)
		c.Next()
	}
}

// UserID extracts the authenticated user ID set by RequireAuth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(httpkit.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
