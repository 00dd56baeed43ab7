// internal/handlers/admin_product.go
package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newerastudio/storefront/internal/cache"
	"github.com/newerastudio/storefront/internal/catalog"
	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/pricing"
	"github.com/newerastudio/storefront/internal/store"
	"github.com/newerastudio/storefront/internal/utils"
)

// AdminProductHandler owns the back-office CRUD surface. Every successful
// mutation invalidates the cached storefront renders the change affects.
type AdminProductHandler struct {
	products *store.ProductStore
	pages    *cache.PageCache
}

func NewAdminProductHandler(products *store.ProductStore, pages *cache.PageCache) *AdminProductHandler {
	return &AdminProductHandler{products: products, pages: pages}
}

type CreateProductRequest struct {
	ID               string                  `json:"id"`
	Handle           string                  `json:"handle"`
	Title            string                  `json:"title" validate:"required"`
	Description      string                  `json:"description"`
	DescriptionHTML  string                  `json:"descriptionHtml"`
	ProductType      models.ProductType      `json:"productType" validate:"required"`
	Tags             []string                `json:"tags"`
	Images           []models.ProductImage   `json:"images"`
	Variants         []models.ProductVariant `json:"variants"`
	Options          []models.ProductOption  `json:"options"`
	AvailableForSale *bool                   `json:"availableForSale"`
}

type UpdateProductRequest struct {
	Handle           *string                  `json:"handle"`
	Title            *string                  `json:"title"`
	Description      *string                  `json:"description"`
	DescriptionHTML  *string                  `json:"descriptionHtml"`
	ProductType      *models.ProductType      `json:"productType"`
	Tags             *[]string                `json:"tags"`
	Images           *[]models.ProductImage   `json:"images"`
	Variants         *[]models.ProductVariant `json:"variants"`
	Options          *[]models.ProductOption  `json:"options"`
	AvailableForSale *bool                    `json:"availableForSale"`
}

type UpdatePricingRequest struct {
	VariantPrices json.RawMessage `json:"variantPrices"`
}

type GenerateVariantsRequest struct {
	ProductType    models.ProductType `json:"productType" validate:"required"`
	TextureCode    string             `json:"textureCode"`
	Lengths        []string           `json:"lengths" validate:"required,min=1"`
	BasePrice      float64            `json:"basePrice" validate:"gt=0"`
	Increment      float64            `json:"increment"`
	CompareAtExtra float64            `json:"compareAtExtra"`
	ManualPrices   map[string]float64 `json:"manualPrices"`
}

// GET /api/admin/products
func (h *AdminProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products})
}

// GET /api/admin/products/:id
func (h *AdminProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch product")
		return
	}
	utils.SuccessResponse(c, gin.H{"product": product})
}

// POST /api/admin/products
func (h *AdminProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product := buildProduct(req)
	created, err := h.products.Create(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateID) || errors.Is(err, store.ErrDuplicateHandle) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.invalidate(created.Handle)
	utils.CreatedResponse(c, gin.H{"product": created})
}

// PUT /api/admin/products/:id
func (h *AdminProductHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	update := store.ProductUpdate{
		Handle:           req.Handle,
		Title:            req.Title,
		Description:      req.Description,
		DescriptionHTML:  req.DescriptionHTML,
		ProductType:      req.ProductType,
		Tags:             req.Tags,
		Images:           req.Images,
		Variants:         req.Variants,
		Options:          req.Options,
		AvailableForSale: req.AvailableForSale,
	}

	updated, err := h.products.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			utils.NotFoundResponse(c, "Product not found")
		case errors.Is(err, store.ErrDuplicateHandle):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	h.invalidate(updated.Handle)
	utils.SuccessResponse(c, gin.H{"product": updated})
}

// DELETE /api/admin/products/:id
func (h *AdminProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	// Resolve the handle first so the detail page can be invalidated.
	var handle string
	if product, err := h.products.GetByID(c.Request.Context(), id); err == nil {
		handle = product.Handle
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.invalidate(handle)
	utils.SuccessResponse(c, gin.H{"deleted": id})
}

// PUT /api/admin/products/:id/pricing
func (h *AdminProductHandler) UpdatePricing(c *gin.Context) {
	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	// A missing field or a JSON null also fails here; only a real array
	// passes, empty included.
	var prices []store.VariantPrice
	if err := json.Unmarshal(req.VariantPrices, &prices); err != nil || prices == nil {
		utils.BadRequestResponse(c, "variantPrices must be an array", nil)
		return
	}

	updated, err := h.products.UpdatePricing(c.Request.Context(), c.Param("id"), prices)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.invalidate(updated.Handle)
	utils.SuccessResponse(c, gin.H{"product": updated})
}

// GET /api/admin/products/meta
//
// Serves the static facet lists and per-type pricing defaults the product
// form is built from.
func (h *AdminProductHandler) GetFormMeta(c *gin.Context) {
	types := make([]gin.H, 0, len(models.ProductTypes))
	for _, pt := range models.ProductTypes {
		defaults := pricing.Defaults[pt]
		types = append(types, gin.H{
			"name":      pt,
			"code":      pricing.TypeCodes[pt],
			"lengths":   defaults.Lengths,
			"basePrice": defaults.BasePrice,
			"increment": defaults.Increment,
		})
	}

	utils.SuccessResponse(c, gin.H{
		"productTypes": types,
		"textures":     catalog.Textures,
		"lengths":      catalog.Lengths,
		"laceTypes":    catalog.LaceTypes,
		"colors":       catalog.Colors,
	})
}

// POST /api/admin/products/generate-variants
func (h *AdminProductHandler) GenerateVariants(c *gin.Context) {
	var req GenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	variants, options := pricing.Generate(pricing.Input{
		ProductType:    req.ProductType,
		TextureCode:    req.TextureCode,
		Lengths:        req.Lengths,
		BasePrice:      req.BasePrice,
		Increment:      req.Increment,
		CompareAtExtra: req.CompareAtExtra,
		ManualPrices:   req.ManualPrices,
	})

	utils.SuccessResponse(c, gin.H{"variants": variants, "options": options})
}

// invalidate drops the cached home and listing pages plus the affected
// detail page.
func (h *AdminProductHandler) invalidate(handle string) {
	paths := []string{"/", "/shop"}
	if handle != "" {
		paths = append(paths, "/products/"+handle)
	}
	h.pages.Invalidate(paths...)
}

// buildProduct maps an admin create request onto a full product record,
// synthesizing the id and handle when omitted.
func buildProduct(req CreateProductRequest) models.Product {
	id := req.ID
	if id == "" {
		id = utils.NewProductID()
	}
	handle := req.Handle
	if handle == "" {
		handle = utils.Slugify(req.Title)
	}

	description := req.Description
	descriptionHTML := req.DescriptionHTML
	if descriptionHTML == "" {
		descriptionHTML = "<p>" + description + "</p>"
	}

	availableForSale := true
	if req.AvailableForSale != nil {
		availableForSale = *req.AvailableForSale
	}

	featured := models.ProductImage{ID: "placeholder", AltText: req.Title, Width: 800, Height: 800}
	if len(req.Images) > 0 {
		featured = req.Images[0]
	}

	product := models.Product{
		ID:               id,
		Handle:           handle,
		Title:            req.Title,
		Description:      description,
		DescriptionHTML:  descriptionHTML,
		Vendor:           catalog.Vendor,
		ProductType:      req.ProductType,
		Tags:             req.Tags,
		Images:           req.Images,
		Variants:         req.Variants,
		Options:          req.Options,
		FeaturedImage:    featured,
		AvailableForSale: availableForSale,
		CreatedAt:        time.Now().UTC(),
	}
	product.RecomputePriceRange()
	return product
}
