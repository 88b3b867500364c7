package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/middleware"
	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/internal/service"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
	"github.com/mkcore/itam-api/pkg/response"
)

type groupService interface {
	List(ctx context.Context) ([]models.GroupSummary, error)
	Get(ctx context.Context, id int64) (*models.Group, error)
	Create(ctx context.Context, req service.GroupRequest, actor string) (*models.Group, error)
	Update(ctx context.Context, id int64, req service.GroupRequest, actor string) (*models.Group, error)
	Delete(ctx context.Context, id int64, actor string) error
}

// GroupHandler handles group CRUD endpoints.
type GroupHandler struct {
	service groupService
}

// NewGroupHandler creates a new group handler.
func NewGroupHandler(svc groupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// List returns all groups with member counts.
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Get returns one group with its member set.
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	group, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group)
}

// Create adds a new group.
func (h *GroupHandler) Create(c *gin.Context) {
	var req service.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	group, err := h.service.Create(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// Update replaces a group's fields and member set.
func (h *GroupHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	group, err := h.service.Update(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group)
}

// Delete removes a group.
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
