package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

// idParam parses the :id route parameter.
func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid id")
	}
	return id, nil
}
