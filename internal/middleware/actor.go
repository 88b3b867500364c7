package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/models"
)

// HeaderPerformedBy carries the acting identity supplied by the caller.
const HeaderPerformedBy = "X-Performed-By"

// Actor returns the acting identity for the request. Requests without the
// header are attributed to "System".
func Actor(c *gin.Context) string {
	if actor := c.GetHeader(HeaderPerformedBy); actor != "" {
		return actor
	}
	return models.ActorSystem
}
