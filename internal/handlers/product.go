// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newerastudio/storefront/internal/catalog"
	"github.com/newerastudio/storefront/internal/store"
	"github.com/newerastudio/storefront/internal/utils"
)

// ProductHandler serves the public storefront API.
type ProductHandler struct {
	products *store.ProductStore
}

func NewProductHandler(products *store.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/collections
func (h *ProductHandler) GetCollections(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch collections")
		return
	}
	c.JSON(http.StatusOK, catalog.Collections(products))
}
