package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTenantResolver struct {
	mock.Mock
}

func (m *MockTenantResolver) TenantFromToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func newTenantRouter(resolver TenantResolver, seen *string) *gin.Engine {
	router := gin.New()
	router.Use(TenantContext(TenantContextConfig{Resolver: resolver}))
	handler := func(c *gin.Context) {
		if id, ok := GetTenantID(c); ok {
			*seen = id.String()
		}
		c.Status(http.StatusOK)
	}
	router.GET("/api/v1/pricing/rules", handler)
	router.POST("/api/v1/auth/login", handler)
	return router
}

func TestTenantContext_Header(t *testing.T) {
	var seen string
	resolver := new(MockTenantResolver)
	router := newTenantRouter(resolver, &seen)
	tenantID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/rules", nil)
	req.Header.Set(TenantHeaderKey, tenantID.String())
	req.Header.Set(AuthHeaderKey, "Bearer ignored")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenantID.String(), seen)
	resolver.AssertNotCalled(t, "TenantFromToken", mock.Anything)
}

func TestTenantContext_InvalidHeader(t *testing.T) {
	var seen string
	router := newTenantRouter(nil, &seen)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.Header.Set(TenantHeaderKey, "not-a-uuid")
	w := serve(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Error.Code)
}

func TestTenantContext_FromToken(t *testing.T) {
	var seen string
	resolver := new(MockTenantResolver)
	tenantID := uuid.New()
	resolver.On("TenantFromToken", "good").Return(tenantID, nil)
	router := newTenantRouter(resolver, &seen)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/rules", nil)
	req.Header.Set(AuthHeaderKey, "Bearer good")
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenantID.String(), seen)
	resolver.AssertExpectations(t)
}

func TestTenantContext_Missing(t *testing.T) {
	resolver := new(MockTenantResolver)
	resolver.On("TenantFromToken", "garbage").Return(uuid.Nil, errors.New("invalid token"))

	t.Run("public path passes without tenant", func(t *testing.T) {
		var seen string
		router := newTenantRouter(resolver, &seen)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.Header.Set(AuthHeaderKey, "Bearer garbage")
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, seen)
	})

	t.Run("protected path requires tenant", func(t *testing.T) {
		var seen string
		router := newTenantRouter(resolver, &seen)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/rules", nil)
		req.Header.Set(AuthHeaderKey, "Bearer garbage")
		w := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "TENANT_REQUIRED", body.Error.Code)
		assert.Equal(t, "Tenant information is required", body.Message)
	})
}

func TestIsPublicPath(t *testing.T) {
	public := DefaultPublicPaths()
	assert.True(t, isPublicPath("/api/v1/auth/login", public))
	assert.True(t, isPublicPath("/api/v1/auth/login/", public))
	assert.True(t, isPublicPath("/health", public))
	assert.False(t, isPublicPath("/api/v1/auth/me", public))
	assert.False(t, isPublicPath("/api/v1/pricing/calculate", public))
}

func TestIsPublicPath_Anchored(t *testing.T) {
	public := DefaultPublicPaths()
	assert.True(t, isPublicPath("/api/v2/auth/refresh", public))
	assert.True(t, isPublicPath("/api/v1/laundry/auth/login", public))

	assert.False(t, isPublicPath("/api/v1/pricing/rules/auth/login", public))
	assert.False(t, isPublicPath("/api/v1/laundry/extra/auth/login", public))
	assert.False(t, isPublicPath("/reports/health", public))
	assert.False(t, isPublicPath("/api/v1", public))
}

func TestTenantContext_ProtectedPathEndingInPublicSuffix(t *testing.T) {
	router := gin.New()
	router.Use(TenantContext(TenantContextConfig{}))
	router.POST("/api/v1/pricing/rules/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/rules/auth/login", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TENANT_REQUIRED", decodeError(t, w).Error.Code)
}
