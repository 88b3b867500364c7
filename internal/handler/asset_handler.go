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

type assetService interface {
	List(ctx context.Context) ([]models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	Create(ctx context.Context, req service.AssetRequest, actor string) (*models.Asset, error)
	Update(ctx context.Context, id int64, req service.AssetRequest, actor string) (*models.Asset, error)
	Delete(ctx context.Context, id int64, actor string) error
}

// AssetHandler handles asset CRUD endpoints.
type AssetHandler struct {
	service assetService
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler(svc assetService) *AssetHandler {
	return &AssetHandler{service: svc}
}

// List returns all assets.
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assets)
}

// Get returns one asset.
func (h *AssetHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	asset, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asset)
}

// Create registers a new asset.
func (h *AssetHandler) Create(c *gin.Context) {
	var req service.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	asset, err := h.service.Create(c.Request.Context(), req, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, asset)
}

// Update replaces an asset's fields.
func (h *AssetHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	asset, err := h.service.Update(c.Request.Context(), id, req, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asset)
}

// Delete removes an asset.
func (h *AssetHandler) Delete(c *gin.Context) {
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
