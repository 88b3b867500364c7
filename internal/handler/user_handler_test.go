package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/middleware"
	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/internal/service"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
	"github.com/mkcore/itam-api/pkg/response"
)

type userServiceMock struct {
	user      *models.User
	users     []models.User
	err       error
	lastActor string
}

func (m *userServiceMock) List(ctx context.Context) ([]models.User, error) {
	return m.users, m.err
}

func (m *userServiceMock) Get(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *userServiceMock) Create(ctx context.Context, req service.UserRequest, actor string) (*models.User, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *userServiceMock) Update(ctx context.Context, id int64, req service.UserRequest, actor string) (*models.User, error) {
	m.lastActor = actor
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *userServiceMock) Delete(ctx context.Context, id int64, actor string) error {
	m.lastActor = actor
	return m.err
}

func newHandlerContext(t *testing.T, method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestUserHandlerCreateInvalidBody(t *testing.T) {
	h := NewUserHandler(&userServiceMock{})
	c, w := newHandlerContext(t, http.MethodPost, "/users", []byte(`not json`))

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlerCreateThreadsActorHeader(t *testing.T) {
	mock := &userServiceMock{user: &models.User{ID: 1, Account: "jane.doe"}}
	h := NewUserHandler(mock)

	body, _ := json.Marshal(service.UserRequest{FirstName: "Jane", LastName: "Doe"})
	c, w := newHandlerContext(t, http.MethodPost, "/users", body)
	c.Request.Header.Set(middleware.HeaderPerformedBy, "admin")

	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin", mock.lastActor)
}

func TestUserHandlerDeleteDefaultsActorToSystem(t *testing.T) {
	mock := &userServiceMock{}
	h := NewUserHandler(mock)

	c, w := newHandlerContext(t, http.MethodDelete, "/users/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, models.ActorSystem, mock.lastActor)
}

func TestUserHandlerGetInvalidID(t *testing.T) {
	h := NewUserHandler(&userServiceMock{})
	c, w := newHandlerContext(t, http.MethodGet, "/users/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlerGetNotFound(t *testing.T) {
	h := NewUserHandler(&userServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "user not found")})
	c, w := newHandlerContext(t, http.MethodGet, "/users/404", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}

	h.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestUserHandlerListOmitsPasswords(t *testing.T) {
	mock := &userServiceMock{users: []models.User{{ID: 1, Account: "jane.doe", Password: "secret", Groups: []models.GroupRef{}}}}
	h := NewUserHandler(mock)
	c, w := newHandlerContext(t, http.MethodGet, "/users", nil)

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Contains(t, w.Body.String(), "jane.doe")
}
