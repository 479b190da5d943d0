package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/servicehub/backend/internal/application/catalog"
	"github.com/servicehub/backend/internal/domain/catalog"
	"github.com/servicehub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTemplateRouter(svc *MockTemplateService) *gin.Engine {
	h := NewTemplateHandler(svc)
	router := gin.New()
	router.GET("/templates", h.List)
	router.POST("/templates", h.Create)
	router.PATCH("/templates/:id/toggle-status", h.ToggleStatus)
	router.GET("/templates/categories/:businessTypeId", h.Categories)
	return router
}

func serviceTemplates() *MockTemplateService {
	svc := new(MockTemplateService)
	svc.On("Kind").Return(catalog.KindService)
	return svc
}

func TestTemplateHandler_ListFilter(t *testing.T) {
	svc := serviceTemplates()
	btID := uuid.New()
	active := true
	svc.On("List", mock.Anything, catalog.TemplateFilter{
		BusinessTypeID: &btID, Category: "washing", IsActive: &active,
	}).Return([]catalogapp.TemplateResponse{}, nil)
	router := newTemplateRouter(svc)

	w := do(router, http.MethodGet, "/templates?businessTypeId="+btID.String()+"&category=washing&isActive=true")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(router, http.MethodGet, "/templates?businessTypeId=laundry")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "businessTypeId")

	svc.AssertNumberOfCalls(t, "List", 1)
}

func TestTemplateHandler_Create(t *testing.T) {
	btID := uuid.New()

	t.Run("requires base price", func(t *testing.T) {
		svc := serviceTemplates()
		w := doJSON(newTemplateRouter(svc), http.MethodPost, "/templates", gin.H{
			"businessTypeId": btID.String(), "name": "Ironing", "description": "Steam iron",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "basePrice")
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates", func(t *testing.T) {
		svc := serviceTemplates()
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in catalogapp.CreateTemplateInput) bool {
			return in.Name == "Ironing" && in.BasePrice.Equal(decimal.RequireFromString("12.50")) &&
				in.Attributes["fabric"].Type == "string"
		})).Return(&catalogapp.TemplateResponse{ID: uuid.New(), Name: "Ironing"}, nil)

		w := doJSON(newTemplateRouter(svc), http.MethodPost, "/templates", gin.H{
			"businessTypeId": btID.String(),
			"name":           "Ironing",
			"description":    "Steam iron",
			"basePrice":      "12.50",
			"attributes":     gin.H{"fabric": gin.H{"type": "string"}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Service template created", decode(t, w).Message)
	})
}

func TestTemplateHandler_ToggleStatus(t *testing.T) {
	svc := serviceTemplates()
	id := uuid.New()
	svc.On("ToggleStatus", mock.Anything, id).Return(&catalogapp.TemplateResponse{ID: id, IsActive: false}, nil)

	w := do(newTemplateRouter(svc), http.MethodPatch, "/templates/"+id.String()+"/toggle-status")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Service template deactivated", decode(t, w).Message)
}

func TestTemplateHandler_CategoriesUnknownBusinessType(t *testing.T) {
	svc := serviceTemplates()
	btID := uuid.New()
	svc.On("Categories", mock.Anything, btID).Return(nil, shared.ErrBusinessTypeNotFound)

	w := do(newTemplateRouter(svc), http.MethodGet, "/templates/categories/"+btID.String())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateHandler_ProductLabel(t *testing.T) {
	svc := new(MockTemplateService)
	svc.On("Kind").Return(catalog.KindProduct)
	id := uuid.New()
	svc.On("ToggleStatus", mock.Anything, id).Return(&catalogapp.TemplateResponse{ID: id, IsActive: true}, nil)

	w := do(newTemplateRouter(svc), http.MethodPatch, "/templates/"+id.String()+"/toggle-status")

	assert.Equal(t, "Product template activated", decode(t, w).Message)
}
