// internal/handlers/storefront.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/newerastudio/storefront/internal/account"
	"github.com/newerastudio/storefront/internal/cart"
	"github.com/newerastudio/storefront/internal/checkout"
	"github.com/newerastudio/storefront/internal/config"
	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/store"
	"github.com/newerastudio/storefront/internal/utils"
)

// VisitorCookie identifies an anonymous shopper. Cart contents and the
// active account session hang off this id in the kv store.
const VisitorCookie = "nes-visitor"

const visitorCookieMaxAge = 60 * 60 * 24 * 365

const visitorContextKey = "storefront.visitor"

// StorefrontHandler is the application shell for shopper state: it scopes
// a cart engine and account store to the visitor cookie on every request
// and exposes their operations over HTTP.
type StorefrontHandler struct {
	products *store.ProductStore
	kv       kv.Store
	provider checkout.Provider
	cfg      *config.Config
}

func NewStorefrontHandler(products *store.ProductStore, kvStore kv.Store, provider checkout.Provider, cfg *config.Config) *StorefrontHandler {
	return &StorefrontHandler{products: products, kv: kvStore, provider: provider, cfg: cfg}
}

// visitorID reads the visitor cookie, minting one when absent. The id is
// cached on the request context so one request never spans two visitors.
func (h *StorefrontHandler) visitorID(c *gin.Context) string {
	if id, ok := c.Get(visitorContextKey); ok {
		return id.(string)
	}
	id, err := c.Cookie(VisitorCookie)
	if err != nil || id == "" {
		id = uuid.New().String()
		c.SetCookie(VisitorCookie, id, visitorCookieMaxAge, "/", "", h.cfg.Environment == "production", true)
	}
	c.Set(visitorContextKey, id)
	return id
}

func (h *StorefrontHandler) cartEngine(c *gin.Context) *cart.Engine {
	engine := cart.NewEngine(h.kv, cart.WithStorageKey("new-era-studio-cart-"+h.visitorID(c)))
	engine.Load(c.Request.Context())
	return engine
}

func (h *StorefrontHandler) accountStore(c *gin.Context) *account.Store {
	accounts := account.NewStore(h.kv, account.WithSessionKey("new-era-studio-session-"+h.visitorID(c)))
	accounts.Load(c.Request.Context())
	return accounts
}

func (h *StorefrontHandler) cartResponse(c *gin.Context, snapshot models.Cart) {
	summary := cart.Summarize(snapshot, h.cfg.Storefront.FreeShippingThreshold, h.cfg.Storefront.FlatShippingRate)
	c.JSON(http.StatusOK, gin.H{"cart": snapshot, "summary": summary})
}

// GET /api/cart
func (h *StorefrontHandler) GetCart(c *gin.Context) {
	h.cartResponse(c, h.cartEngine(c).Cart())
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart/items
func (h *StorefrontHandler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := h.products.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		utils.NotFoundResponse(c, "Product not found")
		return
	}

	var variant *models.ProductVariant
	for i := range product.Variants {
		if product.Variants[i].ID == req.VariantID {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		utils.NotFoundResponse(c, "Variant not found")
		return
	}

	item := models.CartItem{
		VariantID:      variant.ID,
		ProductID:      product.ID,
		Handle:         product.Handle,
		Title:          product.Title,
		VariantTitle:   variant.Title,
		Price:          variant.Price,
		CompareAtPrice: variant.CompareAtPrice,
		Quantity:       req.Quantity,
		Image:          product.FeaturedImage,
	}

	h.cartResponse(c, h.cartEngine(c).Add(c.Request.Context(), item))
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /api/cart/items/:itemId
func (h *StorefrontHandler) SetCartItemQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	h.cartResponse(c, h.cartEngine(c).SetQuantity(c.Request.Context(), c.Param("itemId"), req.Quantity))
}

// DELETE /api/cart/items/:itemId
func (h *StorefrontHandler) RemoveCartItem(c *gin.Context) {
	h.cartResponse(c, h.cartEngine(c).Remove(c.Request.Context(), c.Param("itemId")))
}

// DELETE /api/cart
func (h *StorefrontHandler) ClearCart(c *gin.Context) {
	h.cartResponse(c, h.cartEngine(c).Clear(c.Request.Context()))
}

// POST /api/checkout
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	engine := h.cartEngine(c)
	accounts := h.accountStore(c)

	service := checkout.NewService(h.provider, engine, accounts, h.kv,
		checkout.WithLastOrderKey(checkout.LastOrderKey(h.visitorID(c))))
	result, err := service.Checkout(c.Request.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			utils.BadRequestResponse(c, "Cart is empty", nil)
			return
		}
		utils.InternalErrorResponse(c, "Something went wrong. Please try again.")
		return
	}

	c.JSON(http.StatusOK, result)
}

type RegisterRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	SubscribedToOffers bool   `json:"subscribedToOffers"`
}

// POST /api/account/register
func (h *StorefrontHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	customer, err := h.accountStore(c).Register(c.Request.Context(), account.RegisterInput{
		Email:              req.Email,
		Password:           req.Password,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		SubscribedToOffers: req.SubscribedToOffers,
	})
	if err != nil {
		if errors.Is(err, account.ErrDuplicateEmail) {
			utils.ConflictResponse(c, "An account with this email already exists.")
			return
		}
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{"customer": customer})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// POST /api/account/login
func (h *StorefrontHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	accounts := h.accountStore(c)
	customer, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			utils.NotFoundResponse(c, "No account found with that email.")
			return
		}
		utils.UnauthorizedResponse(c, "Incorrect password.")
		return
	}

	utils.SuccessResponse(c, gin.H{"customer": customer, "orders": accounts.Orders()})
}

// DELETE /api/account/session
func (h *StorefrontHandler) Logout(c *gin.Context) {
	h.accountStore(c).Logout(c.Request.Context())
	utils.SuccessResponse(c, gin.H{"authenticated": false})
}

// GET /api/account
func (h *StorefrontHandler) GetAccount(c *gin.Context) {
	accounts := h.accountStore(c)
	customer := accounts.Customer()
	if customer == nil {
		utils.UnauthorizedResponse(c, "No active session")
		return
	}
	utils.SuccessResponse(c, gin.H{"customer": customer, "orders": accounts.Orders()})
}

type UpdateProfileRequest struct {
	FirstName          *string `json:"firstName"`
	LastName           *string `json:"lastName"`
	SubscribedToOffers *bool   `json:"subscribedToOffers"`
}

// PUT /api/account
func (h *StorefrontHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	customer, err := h.accountStore(c).UpdateProfile(c.Request.Context(), account.ProfileUpdate{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		SubscribedToOffers: req.SubscribedToOffers,
	})
	if err != nil {
		utils.UnauthorizedResponse(c, "No active session")
		return
	}

	utils.SuccessResponse(c, gin.H{"customer": customer})
}
