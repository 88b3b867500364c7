package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/internal/policy"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/users", nil)
	return c, w
}

func TestActorDefaultsToSystem(t *testing.T) {
	c, _ := newTestContext(t)
	assert.Equal(t, models.ActorSystem, Actor(c))
}

func TestActorReadsHeader(t *testing.T) {
	c, _ := newTestContext(t)
	c.Request.Header.Set(HeaderPerformedBy, "jane.doe")
	assert.Equal(t, "jane.doe", Actor(c))
}

func TestAuthorizePassesAnonymousCallers(t *testing.T) {
	c, w := newTestContext(t)

	Authorize(policy.Create(policy.EntityUser))(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeBlocksRoleUserFromMutations(t *testing.T) {
	c, w := newTestContext(t)
	c.Set(ContextUserKey, &models.Claims{Account: "jane.doe", Role: models.RoleUser})

	Authorize(policy.Create(policy.EntityUser))(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorizeAllowsOperators(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleTechnician} {
		c, _ := newTestContext(t)
		c.Set(ContextUserKey, &models.Claims{Account: "op", Role: role})

		Authorize(policy.Delete(policy.EntityAsset))(c)

		assert.False(t, c.IsAborted(), "role %s", role)
	}
}

func TestAuthorizeBlocksRoleUserFromAuditTrail(t *testing.T) {
	c, w := newTestContext(t)
	c.Set(ContextUserKey, &models.Claims{Account: "jane.doe", Role: models.RoleUser})

	Authorize(policy.View(policy.EntityAuditLog))(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
