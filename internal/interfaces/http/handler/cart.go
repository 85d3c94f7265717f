package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	cartapp "github.com/shoplite/storefront/internal/application/cart"
	catalogapp "github.com/shoplite/storefront/internal/application/catalog"
	"github.com/shoplite/storefront/internal/domain/cart"
	"github.com/shoplite/storefront/internal/domain/shared"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/interfaces/http/dto"
	"github.com/shoplite/storefront/internal/interfaces/http/middleware"
)

// CartStores opens the cart store of the profile a request was resolved to
type CartStores struct {
	storage shared.ProfileStorage
	metrics cartapp.MetricsRecorder
}

// NewCartStores creates a CartStores over storage. metrics may be nil.
func NewCartStores(storage shared.ProfileStorage, metrics cartapp.MetricsRecorder) *CartStores {
	return &CartStores{storage: storage, metrics: metrics}
}

// ForRequest returns the cart store for the request's profile. It must run
// after the Profile middleware.
func (s *CartStores) ForRequest(c *gin.Context) *cartapp.CartStore {
	return cartapp.NewCartStore(
		s.storage.Profile(middleware.GetProfileID(c)),
		cartapp.WithLogger(logger.GetGinLogger(c)),
		cartapp.WithMetrics(s.metrics),
	)
}

// CartHandler handles cart-related API endpoints
type CartHandler struct {
	BaseHandler
	stores  *CartStores
	catalog *catalogapp.CatalogService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(stores *CartStores, catalog *catalogapp.CatalogService) *CartHandler {
	return &CartHandler{stores: stores, catalog: catalog}
}

// GetCart godoc
// @ID           getCart
// @Summary      Get the cart
// @Description  Returns the shopper's cart lines and total. A missing or unreadable cart is empty.
// @Tags         cart
// @Produce      json
// @Router       /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	crt, err := h.stores.ForRequest(c).Load(c.Request.Context())
	h.respondCart(c, crt, err)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add an item to the cart
// @Description  Adds one unit of a product with the given name and price. A product already in the cart gains one unit.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request  body  dto.AddCartItemRequest  true  "Product, name and unit price"
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	crt, err := h.stores.ForRequest(c).AddRaw(c.Request.Context(), req.ProductID, req.Name, req.RawPrice())
	h.respondCart(c, crt, err)
}

// AddProduct godoc
// @ID           addCartProduct
// @Summary      Add a catalog product to the cart
// @Description  Looks the product up in the catalog and adds one unit at its current name and price
// @Tags         cart
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Router       /cart/products/{id} [post]
func (h *CartHandler) AddProduct(c *gin.Context) {
	id := cart.ParseProductID(c.Param("id"))
	crt, err := h.catalog.AddToCart(c.Request.Context(), h.stores.ForRequest(c), id)
	h.respondCart(c, crt, err)
}

// SetLineQuantity godoc
// @ID           setCartLineQuantity
// @Summary      Set a line's quantity
// @Description  Sets the quantity of the line at a 0-based position. Unparseable, zero or negative quantities become 1.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        index    path  int                     true  "Line index (0-based)"
// @Param        request  body  dto.SetQuantityRequest  true  "New quantity"
// @Router       /cart/items/{index} [put]
func (h *CartHandler) SetLineQuantity(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}
	var req dto.SetQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	crt, err := h.stores.ForRequest(c).SetQuantity(c.Request.Context(), index, req.RawQuantity())
	h.respondCart(c, crt, err)
}

// RemoveLine godoc
// @ID           removeCartLine
// @Summary      Remove a line
// @Description  Deletes the line at a 0-based position; later lines move up
// @Tags         cart
// @Produce      json
// @Param        index  path  int  true  "Line index (0-based)"
// @Router       /cart/items/{index} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	index, ok := h.lineIndex(c)
	if !ok {
		return
	}
	crt, err := h.stores.ForRequest(c).Remove(c.Request.Context(), index)
	h.respondCart(c, crt, err)
}

// SetProductQuantity godoc
// @ID           setCartProductQuantity
// @Summary      Set a product's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Product ID"
// @Param        request  body  dto.SetQuantityRequest  true  "New quantity"
// @Router       /cart/products/{id} [put]
func (h *CartHandler) SetProductQuantity(c *gin.Context) {
	var req dto.SetQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}
	id := cart.ParseProductID(c.Param("id"))
	crt, err := h.stores.ForRequest(c).SetQuantityByProduct(c.Request.Context(), id, req.RawQuantity())
	h.respondCart(c, crt, err)
}

// RemoveProduct godoc
// @ID           removeCartProduct
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Router       /cart/products/{id} [delete]
func (h *CartHandler) RemoveProduct(c *gin.Context) {
	id := cart.ParseProductID(c.Param("id"))
	crt, err := h.stores.ForRequest(c).RemoveByProduct(c.Request.Context(), id)
	h.respondCart(c, crt, err)
}

// ClearCart godoc
// @ID           clearCart
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Router       /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	err := h.stores.ForRequest(c).Clear(c.Request.Context())
	h.respondCart(c, cart.Cart{}, err)
}

func (h *CartHandler) respondCart(c *gin.Context, crt cart.Cart, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewCartResponse(crt))
}

func (h *CartHandler) lineIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.BadRequest(c, "Line index must be an integer")
		return 0, false
	}
	return index, true
}
