package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/models"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

type authServiceMock struct {
	resp *models.LoginResponse
	err  error
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func TestAuthHandlerLoginInvalidBody(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{})
	c, w := newHandlerContext(t, http.MethodPost, "/auth/login", []byte(`{`))

	h.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid account or password")})

	body, _ := json.Marshal(models.LoginRequest{Account: "admin", Password: "wrong"})
	c, w := newHandlerContext(t, http.MethodPost, "/auth/login", body)

	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{resp: &models.LoginResponse{
		User:  models.UserInfo{ID: 1, Account: "admin", Role: models.RoleAdmin},
		Token: "signed-token",
	}})

	body, _ := json.Marshal(models.LoginRequest{Account: "admin", Password: "admin"})
	c, w := newHandlerContext(t, http.MethodPost, "/auth/login", body)

	h.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed-token")
	assert.Contains(t, w.Body.String(), `"role":"Admin"`)
}
