// internal/handlers/pages.go
package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newerastudio/storefront/internal/catalog"
	"github.com/newerastudio/storefront/internal/checkout"
	"github.com/newerastudio/storefront/internal/config"
	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/store"
)

// PageHandler renders the server-side storefront pages. These are the routes
// the page cache sits in front of; the admin handlers invalidate them after
// every catalog mutation.
type PageHandler struct {
	products *store.ProductStore
	kv       kv.Store
	cfg      *config.Config
}

func NewPageHandler(products *store.ProductStore, kvStore kv.Store, cfg *config.Config) *PageHandler {
	return &PageHandler{products: products, kv: kvStore, cfg: cfg}
}

// GET /
func (h *PageHandler) Home(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", h.base(gin.H{
			"Message": "Something went wrong. Please try again.",
		}))
		return
	}

	collections := catalog.Collections(products)
	c.HTML(http.StatusOK, "home.tmpl", h.base(gin.H{
		"Collections": collections,
		"BestSellers": findCollection(collections, "best-sellers").Products,
		"NewArrivals": findCollection(collections, "new-arrivals").Products,
	}))
}

// GET /shop
func (h *PageHandler) Shop(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", h.base(gin.H{
			"Message": "Something went wrong. Please try again.",
		}))
		return
	}

	collections := catalog.Collections(products)
	handle := c.DefaultQuery("collection", "all")
	selected := findCollection(collections, handle)
	if selected.Handle == "" {
		selected = findCollection(collections, "all")
	}

	sorted := catalog.SortProducts(selected.Products, models.SortOption(c.DefaultQuery("sort", string(models.SortFeatured))))

	c.HTML(http.StatusOK, "shop.tmpl", h.base(gin.H{
		"Collections": collections,
		"Selected":    selected,
		"Products":    sorted,
		"Sort":        c.DefaultQuery("sort", string(models.SortFeatured)),
	}))
}

// GET /products/:handle
func (h *PageHandler) ProductDetail(c *gin.Context) {
	product, err := h.products.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.tmpl", h.base(gin.H{
			"Message": "Product not found",
		}))
		return
	}

	c.HTML(http.StatusOK, "product.tmpl", h.base(gin.H{
		"Product":         product,
		"DescriptionHTML": template.HTML(product.DescriptionHTML),
	}))
}

// GET /checkout/success
func (h *PageHandler) CheckoutSuccess(c *gin.Context) {
	// External providers redirect back without the order query, so fall
	// back to the visitor's last recorded order reference.
	orderNumber := c.Query("order")
	if orderNumber == "" {
		if visitor, err := c.Cookie(VisitorCookie); err == nil && visitor != "" {
			orderNumber = checkout.LastOrderNumber(c.Request.Context(), h.kv, checkout.LastOrderKey(visitor))
		}
	}
	c.HTML(http.StatusOK, "checkout_success.tmpl", h.base(gin.H{
		"OrderNumber": orderNumber,
	}))
}

// GET /admin/login
func (h *PageHandler) AdminLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_login.tmpl", h.base(gin.H{}))
}

// GET /admin
func (h *PageHandler) AdminDashboard(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.tmpl", h.base(gin.H{
			"Message": "Something went wrong. Please try again.",
		}))
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.tmpl", h.base(gin.H{
		"Products": products,
	}))
}

func (h *PageHandler) base(data gin.H) gin.H {
	data["SiteName"] = h.cfg.Storefront.SiteName
	data["BookingURL"] = h.cfg.Storefront.BookingURL
	return data
}

func findCollection(collections []models.Collection, handle string) models.Collection {
	for _, col := range collections {
		if col.Handle == handle {
			return col
		}
	}
	return models.Collection{}
}
