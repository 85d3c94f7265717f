package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shoplite/storefront/internal/interfaces/http/handler"
)

// StorefrontHandlers are the handlers behind the storefront API
type StorefrontHandlers struct {
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Reports  *handler.ReportHandler
	System   *handler.SystemHandler
}

// StorefrontGroups declares the storefront API.
//
// profile resolves the shopper's cart profile and is applied to the routes
// that touch a cart. tools guards the data repair endpoints; it may be nil.
func StorefrontGroups(h StorefrontHandlers, profile gin.HandlerFunc, tools ...gin.HandlerFunc) []*DomainGroup {
	products := NewDomainGroup("catalog", "/products").
		GET("", h.Catalog.ListProducts).
		GET("/:id", h.Catalog.GetProduct)

	cart := NewDomainGroup("cart", "/cart").Use(profile).
		GET("", h.Cart.GetCart).
		DELETE("", h.Cart.ClearCart).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:index", h.Cart.SetLineQuantity).
		DELETE("/items/:index", h.Cart.RemoveLine).
		POST("/products/:id", h.Cart.AddProduct).
		PUT("/products/:id", h.Cart.SetProductQuantity).
		DELETE("/products/:id", h.Cart.RemoveProduct)

	checkout := NewDomainGroup("checkout", "/checkout").Use(profile).
		POST("", h.Checkout.Checkout)

	orders := NewDomainGroup("orders", "/orders").
		GET("/:id", h.Checkout.GetOrder)

	reports := NewDomainGroup("reports", "/reports").
		GET("/top-products", h.Reports.TopProducts).
		GET("/daily-sales", h.Reports.DailySales).
		GET("/low-stock", h.Reports.LowStock)

	dataTools := NewDomainGroup("tools", "/tools").Use(tools...).
		POST("/recompute-order-totals", h.Reports.RecomputeOrderTotals).
		POST("/refresh-sales-summary", h.Reports.RefreshSalesSummary)

	system := NewDomainGroup("system", "").
		GET("/info", h.System.GetSystemInfo).
		GET("/health", h.System.Health).
		GET("/ping", h.System.Ping)

	return []*DomainGroup{products, cart, checkout, orders, reports, dataTools, system}
}

// RegisterStorefront registers the storefront API on r
func RegisterStorefront(r *Router, h StorefrontHandlers, profile gin.HandlerFunc, tools ...gin.HandlerFunc) []RouteInfo {
	var routes []RouteInfo
	for _, g := range StorefrontGroups(h, profile, tools...) {
		r.Register(g)
		routes = append(routes, g.Routes()...)
	}
	return routes
}
