// internal/router/router.go
package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newerastudio/storefront/internal/cache"
	"github.com/newerastudio/storefront/internal/checkout"
	"github.com/newerastudio/storefront/internal/config"
	"github.com/newerastudio/storefront/internal/handlers"
	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/middleware"
	"github.com/newerastudio/storefront/internal/store"
	"github.com/newerastudio/storefront/internal/utils"
)

func Initialize(cfg *config.Config, products *store.ProductStore, pages *cache.PageCache, kvStore kv.Store, provider checkout.Provider) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(products)
	storefrontHandler := handlers.NewStorefrontHandler(products, kvStore, provider, cfg)
	adminProductHandler := handlers.NewAdminProductHandler(products, pages)
	adminAuthHandler := handlers.NewAdminAuthHandler(cfg)
	pageHandler := handlers.NewPageHandler(products, kvStore, cfg)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	r.SetFuncMap(template.FuncMap{
		"usd":      func(price string) string { return utils.FormatUSD(utils.ParsePrice(price)) },
		"discount": utils.DiscountPercentage,
	})
	r.LoadHTMLGlob("web/templates/*.tmpl")

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Storefront pages, behind the render cache
	storefront := r.Group("")
	storefront.Use(pages.Middleware())
	{
		storefront.GET("/", pageHandler.Home)
		storefront.GET("/shop", pageHandler.Shop)
		storefront.GET("/products/:handle", pageHandler.ProductDetail)
	}
	r.GET("/checkout/success", pageHandler.CheckoutSuccess)

	// Public API
	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/collections", productHandler.GetCollections)

		// Shopper state, scoped to the visitor cookie
		api.GET("/cart", storefrontHandler.GetCart)
		api.POST("/cart/items", storefrontHandler.AddCartItem)
		api.PUT("/cart/items/:itemId", storefrontHandler.SetCartItemQuantity)
		api.DELETE("/cart/items/:itemId", storefrontHandler.RemoveCartItem)
		api.DELETE("/cart", storefrontHandler.ClearCart)
		api.POST("/checkout", storefrontHandler.Checkout)

		acct := api.Group("/account")
		{
			acct.POST("/register", storefrontHandler.Register)
			acct.POST("/login", middleware.LoginRateLimit(), storefrontHandler.Login)
			acct.DELETE("/session", storefrontHandler.Logout)
			acct.GET("", storefrontHandler.GetAccount)
			acct.PUT("", storefrontHandler.UpdateProfile)
		}
	}

	// Admin API
	adminAPI := r.Group("/api/admin")
	{
		auth := adminAPI.Group("/auth")
		auth.Use(middleware.LoginRateLimit())
		{
			auth.POST("", adminAuthHandler.Login)
			auth.DELETE("", adminAuthHandler.Logout)
		}

		protected := adminAPI.Group("/products")
		protected.Use(middleware.AdminSessionRequired())
		{
			protected.GET("", adminProductHandler.ListProducts)
			protected.POST("", adminProductHandler.CreateProduct)
			protected.GET("/meta", adminProductHandler.GetFormMeta)
			protected.POST("/generate-variants", adminProductHandler.GenerateVariants)
			protected.GET("/:id", adminProductHandler.GetProduct)
			protected.PUT("/:id", adminProductHandler.UpdateProduct)
			protected.DELETE("/:id", adminProductHandler.DeleteProduct)
			protected.PUT("/:id/pricing", adminProductHandler.UpdatePricing)
		}
	}

	// Admin pages
	admin := r.Group("/admin")
	admin.Use(middleware.AdminSessionRequired())
	{
		admin.GET("", pageHandler.AdminDashboard)
		admin.GET("/login", pageHandler.AdminLogin)
	}

	return r
}
