package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkcore/itam-api/internal/models"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
	"github.com/mkcore/itam-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login resolves credentials to a user projection and access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
