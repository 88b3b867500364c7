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

type departmentService interface {
	List(ctx context.Context) ([]models.Department, error)
	Get(ctx context.Context, id int64) (*models.Department, error)
	Create(ctx context.Context, req service.DepartmentRequest, actor string) (*models.Department, error)
	Update(ctx context.Context, id int64, req service.DepartmentRequest, actor string) (*models.Department, error)
	Delete(ctx context.Context, id int64, actor string) error
}

// DepartmentHandler handles department CRUD endpoints.
type DepartmentHandler struct {
	service departmentService
}

// NewDepartmentHandler creates a new department handler.
func NewDepartmentHandler(svc departmentService) *DepartmentHandler {
	return &DepartmentHandler{service: svc}
}

// List returns all departments.
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, depts)
}

// Get returns one department.
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	dept, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dept)
}

// Create adds a new department.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req service.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	dept, err := h.service.Create(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dept)
}

// Update replaces a department's fields.
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	dept, err := h.service.Update(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dept)
}

// Delete removes a department.
func (h *DepartmentHandler) Delete(c *gin.Context) {
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
