package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiKeyHeader is the header partners authenticate with.
const apiKeyHeader = "Api-Key"

// APIKeyMiddleware returns middleware that rejects requests whose Api-Key
// header does not match the configured key.
func APIKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(apiKeyHeader) != key {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Invalid API key"})
			return
		}
		c.Next()
	}
}
