package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shoplite/storefront/internal/application/catalog"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/catalog"
)

// CatalogHandler serves the product pages
type CatalogHandler struct {
	BaseHandler
	catalog *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Description  Lists catalog products, optionally filtered by a search term and a category
// @Tags         catalog
// @Produce      json
// @Param        search    query  string  false  "Search term"
// @Param        category  query  string  false  "Category"
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter catalog.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), cart.ParseProductID(c.Param("id")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
