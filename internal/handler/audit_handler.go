package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/pkg/response"
)

type auditService interface {
	List(ctx context.Context) ([]models.AuditLog, error)
	Export(ctx context.Context, format string) ([]byte, string, error)
}

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	service auditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(svc auditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List returns the full trail, newest first.
func (h *AuditHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// Export streams the trail as a CSV or PDF download.
func (h *AuditHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	data, contentType, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	filename := fmt.Sprintf("audit-trail-%s.%s", time.Now().UTC().Format("20060102-150405"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
