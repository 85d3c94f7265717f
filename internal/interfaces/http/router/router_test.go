package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/test/ping").Code)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("test", "/items")
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
	g.GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		DELETE("/:id", ok).
		Handle(http.MethodPatch, "/:id", ok)
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodPut, "/api/v1/items/1"},
		{http.MethodDelete, "/api/v1/items/1"},
		{http.MethodPatch, "/api/v1/items/1"},
	}
	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.method, w.Body.String())
	}
}

func TestDomainGroup_MiddlewareIsScoped(t *testing.T) {
	engine := gin.New()
	api := engine.Group("/api/v1")

	guarded := NewDomainGroup("guarded", "/guarded").Use(func(c *gin.Context) {
		c.Header("X-Test-Middleware", "applied")
		c.Next()
	})
	guarded.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	open := NewDomainGroup("open", "/open")
	open.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	guarded.RegisterRoutes(api)
	open.RegisterRoutes(api)

	assert.Equal(t, "applied", serve(engine, http.MethodGet, "/api/v1/guarded").Header().Get("X-Test-Middleware"))
	assert.Empty(t, serve(engine, http.MethodGet, "/api/v1/open").Header().Get("X-Test-Middleware"))
}

func TestDomainGroup_Subgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("reports", "/reports")
	g.Group("sales", "/sales").GET("/daily", func(c *gin.Context) {
		c.String(http.StatusOK, "daily")
	})
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/reports/sales/daily")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "daily", w.Body.String())
}

func TestDomainGroup_Routes(t *testing.T) {
	noop := func(*gin.Context) {}
	g := NewDomainGroup("cart", "/cart").
		GET("", noop).
		PUT("/items/:index", noop)
	g.Group("products", "/products").DELETE("/:id", noop)

	assert.Equal(t, []RouteInfo{
		{Group: "cart", Method: http.MethodGet, Path: "/cart"},
		{Group: "cart", Method: http.MethodPut, Path: "/cart/items/:index"},
		{Group: "products", Method: http.MethodDelete, Path: "/cart/products/:id"},
	}, g.Routes())

	assert.Equal(t, "cart", g.Name())
	assert.Equal(t, "/cart", g.Prefix())
}
