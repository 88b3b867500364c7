package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/policy"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
	"github.com/mkcore/itam-api/pkg/response"
)

// Authorize gates a route on the access policy table. Enforcement applies
// to authenticated callers only; anonymous requests pass through and are
// attributed to "System" downstream.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.Next()
			return
		}

		if !policy.Allows(claims.Role, op) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
