package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/servicehub/backend/internal/application/identity"
	"github.com/servicehub/backend/internal/domain/identity"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTenantRouter(svc *MockTenantService, caller *identityapp.Identity) *gin.Engine {
	h := NewTenantHandler(svc)
	router := gin.New()
	if caller != nil {
		router.Use(asCaller(caller))
	}
	router.GET("/tenants/profile", h.GetProfile)
	router.PUT("/tenants/profile", h.UpdateProfile)
	router.GET("/tenants", h.List)
	router.PATCH("/tenants/:id/status", h.SetStatus)
	router.DELETE("/tenants/:id", h.Delete)
	return router
}

func TestTenantHandler_Profile(t *testing.T) {
	caller := testCaller(identity.RoleBusinessOwner)
	svc := new(MockTenantService)
	svc.On("GetProfile", mock.Anything, caller.TenantID).
		Return(&identityapp.TenantInfo{ID: caller.TenantID, Name: "Acme", IsActive: true}, nil)
	name := "Acme Laundry"
	svc.On("UpdateProfile", mock.Anything, caller.TenantID, identityapp.UpdateTenantInput{Name: &name}).
		Return(&identityapp.TenantInfo{ID: caller.TenantID, Name: name}, nil)
	router := newTenantRouter(svc, caller)

	w := do(router, http.MethodGet, "/tenants/profile")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Acme"`)

	w = doJSON(router, http.MethodPut, "/tenants/profile", gin.H{"name": name})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Tenant updated", decode(t, w).Message)

	w = doJSON(router, http.MethodPut, "/tenants/profile", gin.H{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestTenantHandler_ProfileWithoutTenant(t *testing.T) {
	w := do(newTenantRouter(new(MockTenantService), nil), http.MethodGet, "/tenants/profile")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TENANT_REQUIRED", errorCode(t, w))
}

func TestTenantHandler_List(t *testing.T) {
	svc := new(MockTenantService)
	filter := shared.Filter{Page: 2, PageSize: 10, Search: "acme"}
	items := []identityapp.TenantInfo{{ID: uuid.New(), Name: "Acme"}}
	svc.On("List", mock.Anything, filter).Return(shared.NewPaginated(items, 11, 2, 10), nil)
	router := newTenantRouter(svc, testCaller(identity.RoleSuperAdmin))

	w := do(router, http.MethodGet, "/tenants?page=2&pageSize=10&search=acme")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(11), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 2, env.Meta.TotalPages)

	w = do(router, http.MethodGet, "/tenants?pageSize=500")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantHandler_ListDefaults(t *testing.T) {
	svc := new(MockTenantService)
	svc.On("List", mock.Anything, shared.DefaultFilter()).
		Return(shared.NewPaginated([]identityapp.TenantInfo{}, 0, 1, 20), nil)

	w := do(newTenantRouter(svc, testCaller(identity.RoleSuperAdmin)), http.MethodGet, "/tenants")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestTenantHandler_SetStatus(t *testing.T) {
	svc := new(MockTenantService)
	id := uuid.New()
	svc.On("SetStatus", mock.Anything, id, false).Return(&identityapp.TenantInfo{ID: id, IsActive: false}, nil)
	router := newTenantRouter(svc, testCaller(identity.RoleSuperAdmin))

	w := doJSON(router, http.MethodPatch, "/tenants/"+id.String()+"/status", gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Tenant deactivated", decode(t, w).Message)

	w = doJSON(router, http.MethodPatch, "/tenants/"+id.String()+"/status", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "isActive")

	svc.AssertNumberOfCalls(t, "SetStatus", 1)
}

func TestTenantHandler_DeleteNotFound(t *testing.T) {
	svc := new(MockTenantService)
	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(shared.NewNotFoundError("Tenant"))

	w := do(newTenantRouter(svc, testCaller(identity.RoleSuperAdmin)), http.MethodDelete, "/tenants/"+id.String())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}
