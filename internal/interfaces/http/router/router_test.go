package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouter_SetupMountsRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).
		Register(NewDomainGroup("pricing", "/pricing").POST("/calculate", reply("quote"))).
		Register(NewDomainGroup("tenants", "/tenants").GET("/profile", reply("profile")))
	assert.Len(t, r.registrars, 2)

	w := serve(engine, http.MethodPost, "/api/v1/pricing/calculate")
	assert.Equal(t, http.StatusNotFound, w.Code, "nothing is mounted before Setup")

	r.Setup()
	w = serve(engine, http.MethodPost, "/api/v1/pricing/calculate")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "quote", w.Body.String())
	assert.Equal(t, "profile", serve(engine, http.MethodGet, "/api/v1/tenants/profile").Body.String())
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("rules", "/rules").
		GET("", reply("list")).
		POST("", reply("create")).
		PUT("/:id", reply("update")).
		PATCH("/:id/toggle-status", reply("toggle")).
		DELETE("/:id", reply("delete")).
		Handle(http.MethodOptions, "/", reply("options"))
	g.RegisterRoutes(engine.Group("/api"))

	tests := []struct {
		method string
		target string
		want   string
	}{
		{http.MethodGet, "/api/rules", "list"},
		{http.MethodPost, "/api/rules", "create"},
		{http.MethodPut, "/api/rules/42", "update"},
		{http.MethodPatch, "/api/rules/42/toggle-status", "toggle"},
		{http.MethodDelete, "/api/rules/42", "delete"},
		{http.MethodOptions, "/api/rules/", "options"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(engine, tt.method, tt.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDomainGroup_MiddlewareScope(t *testing.T) {
	var trail []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			trail = append(trail, name)
			c.Next()
		}
	}

	engine := gin.New()
	g := NewDomainGroup("business-types", "/business-types").Use(mark("app")).
		GET("", reply("public"))
	g.Group("business-types-admin", "").Use(mark("auth")).
		POST("", reply("created"))
	g.RegisterRoutes(engine.Group("/api"))

	serve(engine, http.MethodGet, "/api/business-types")
	assert.Equal(t, []string{"app"}, trail, "subgroup middleware must not leak to the parent")

	trail = nil
	w := serve(engine, http.MethodPost, "/api/business-types")
	assert.Equal(t, "created", w.Body.String())
	assert.Equal(t, []string{"app", "auth"}, trail)
}

func TestDomainGroup_Routes(t *testing.T) {
	g := NewDomainGroup("auth", "/auth").
		POST("/login", reply("")).
		GET("", reply(""))
	g.Group("auth-session", "").GET("/me", reply(""))
	g.Group("auth-admin", "/admin").DELETE("/sessions/", reply(""))

	assert.Equal(t, []Route{
		{Method: http.MethodPost, Path: "/auth/login"},
		{Method: http.MethodGet, Path: "/auth"},
		{Method: http.MethodGet, Path: "/auth/me"},
		{Method: http.MethodDelete, Path: "/auth/admin/sessions/"},
	}, g.Routes())
	assert.Equal(t, "auth", g.Name())
	assert.Equal(t, "/auth", g.Prefix())
}
