package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/internal/service"
)

// ContextUserKey is the gin context key storing token claims.
const ContextUserKey = "currentUser"

// OptionalAuth attaches token claims when a valid bearer token is present
// but never blocks the request. The register predates mandatory
// authentication: callers without a token run as "System".
func OptionalAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Claims returns the token claims attached to the request, if any.
func Claims(c *gin.Context) (*models.Claims, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}
