// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/newerastudio/storefront/internal/cache"
	"github.com/newerastudio/storefront/internal/checkout"
	"github.com/newerastudio/storefront/internal/config"
	"github.com/newerastudio/storefront/internal/kv"
	"github.com/newerastudio/storefront/internal/middleware"
	"github.com/newerastudio/storefront/internal/store"
	"github.com/newerastudio/storefront/internal/utils"
)

type HandlerTestSuite struct {
	suite.Suite
	cfg       *config.Config
	products  *store.ProductStore
	pages     *cache.PageCache
	kv        kv.Store
	router    *gin.Engine
	pageHits  int
	adminAuth *http.Cookie
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetSessionSecret("test-secret")

	suite.cfg = &config.Config{
		Environment: "test",
		Admin:       config.AdminConfig{Password: "letmein"},
		Checkout:    config.CheckoutConfig{SuccessURL: "/checkout/success"},
		Storefront: config.StorefrontConfig{
			SiteName:              "New Era Studio",
			FreeShippingThreshold: 150,
			FlatShippingRate:      9.99,
		},
	}
	suite.products = store.NewProductStore(nil)
	suite.pages = cache.NewPageCache()
	suite.kv = kv.NewMemoryStore()
	suite.pageHits = 0

	productHandler := NewProductHandler(suite.products)
	storefrontHandler := NewStorefrontHandler(suite.products, suite.kv, checkout.MockProvider{SuccessPath: "/checkout/success"}, suite.cfg)
	adminProductHandler := NewAdminProductHandler(suite.products, suite.pages)
	adminAuthHandler := NewAdminAuthHandler(suite.cfg)

	r := gin.New()

	// Stand-in rendered page so cache invalidation is observable.
	cached := r.Group("")
	cached.Use(suite.pages.Middleware())
	cached.GET("/", func(c *gin.Context) {
		suite.pageHits++
		c.String(http.StatusOK, "home")
	})
	cached.GET("/shop", func(c *gin.Context) {
		suite.pageHits++
		c.String(http.StatusOK, "shop sorted by "+c.DefaultQuery("sort", "featured"))
	})

	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/collections", productHandler.GetCollections)
		api.GET("/cart", storefrontHandler.GetCart)
		api.POST("/cart/items", storefrontHandler.AddCartItem)
		api.PUT("/cart/items/:itemId", storefrontHandler.SetCartItemQuantity)
		api.DELETE("/cart/items/:itemId", storefrontHandler.RemoveCartItem)
		api.DELETE("/cart", storefrontHandler.ClearCart)
		api.POST("/checkout", storefrontHandler.Checkout)
		api.POST("/account/register", storefrontHandler.Register)
		api.POST("/account/login", storefrontHandler.Login)
		api.GET("/account", storefrontHandler.GetAccount)
	}

	adminAPI := r.Group("/api/admin")
	{
		adminAPI.POST("/auth", adminAuthHandler.Login)
		adminAPI.DELETE("/auth", adminAuthHandler.Logout)

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

	suite.router = r
	suite.adminAuth = suite.login()
}

func (suite *HandlerTestSuite) login() *http.Cookie {
	w := suite.do("POST", "/api/admin/auth", map[string]interface{}{"password": "letmein"}, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.AdminSessionCookie {
			return cookie
		}
	}
	suite.T().Fatal("admin session cookie not set")
	return nil
}

func (suite *HandlerTestSuite) do(method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		assert.NoError(suite.T(), err)
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) admin(method, path string, body interface{}) *httptest.ResponseRecorder {
	return suite.do(method, path, body, []*http.Cookie{suite.adminAuth})
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &out)
	assert.NoError(suite.T(), err)
	return out
}

func (suite *HandlerTestSuite) TestAdminLoginRejectsWrongPassword() {
	w := suite.do("POST", "/api/admin/auth", map[string]interface{}{"password": "wrong"}, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Empty(suite.T(), w.Result().Cookies())
}

func (suite *HandlerTestSuite) TestAdminAPIRequiresSession() {
	w := suite.do("GET", "/api/admin/products", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	expired := &http.Cookie{Name: utils.AdminSessionCookie, Value: "garbage-token"}
	w = suite.do("GET", "/api/admin/products", nil, []*http.Cookie{expired})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.admin("GET", "/api/admin/products", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestAdminLogoutClearsCookie() {
	w := suite.do("DELETE", "/api/admin/auth", nil, []*http.Cookie{suite.adminAuth})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.AdminSessionCookie {
			cleared = cookie.MaxAge < 0
		}
	}
	assert.True(suite.T(), cleared)
}

func (suite *HandlerTestSuite) TestCreateProductSynthesizesIDAndHandle() {
	w := suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"title":       "Raw Cambodian Wave Bundle",
		"productType": "Bundles",
		"variants": []map[string]interface{}{
			{"id": "v1", "title": `14"`, "price": "85.00", "available": true},
			{"id": "v2", "title": `16"`, "price": "95.00", "available": true},
		},
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	product := response["data"].(map[string]interface{})["product"].(map[string]interface{})
	assert.NotEmpty(suite.T(), product["id"])
	assert.Equal(suite.T(), "raw-cambodian-wave-bundle", product["handle"])

	priceRange := product["priceRange"].(map[string]interface{})
	assert.Equal(suite.T(), "85.00", priceRange["minVariantPrice"].(map[string]interface{})["amount"])
	assert.Equal(suite.T(), "95.00", priceRange["maxVariantPrice"].(map[string]interface{})["amount"])
}

func (suite *HandlerTestSuite) TestCreateProductValidation() {
	w := suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"productType": "Bundles",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateProductDuplicateHandleConflicts() {
	body := map[string]interface{}{
		"id":          "p-dup",
		"handle":      "duplicate-me",
		"title":       "First",
		"productType": "Wigs",
	}
	w := suite.admin("POST", "/api/admin/products", body)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	body["id"] = "p-dup-2"
	w = suite.admin("POST", "/api/admin/products", body)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateProduct() {
	suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"id": "p-upd", "handle": "before-update", "title": "Before", "productType": "Wigs",
	})

	w := suite.admin("PUT", "/api/admin/products/p-upd", map[string]interface{}{
		"title": "After",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	product := response["data"].(map[string]interface{})["product"].(map[string]interface{})
	assert.Equal(suite.T(), "After", product["title"])
	assert.Equal(suite.T(), "before-update", product["handle"])

	w = suite.admin("PUT", "/api/admin/products/missing", map[string]interface{}{"title": "X"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdatePricingRejectsNonArray() {
	suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"id": "p-price", "handle": "priced", "title": "Priced", "productType": "Bundles",
		"variants": []map[string]interface{}{{"id": "v1", "title": `14"`, "price": "65.00"}},
	})

	w := suite.admin("PUT", "/api/admin/products/p-price/pricing", map[string]interface{}{
		"variantPrices": "not-an-array",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "variantPrices must be an array")

	w = suite.admin("PUT", "/api/admin/products/p-price/pricing", map[string]interface{}{
		"variantPrices": nil,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.admin("PUT", "/api/admin/products/p-price/pricing", map[string]interface{}{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.admin("PUT", "/api/admin/products/p-price/pricing", map[string]interface{}{
		"variantPrices": []map[string]interface{}{
			{"variantId": "v1", "price": "99.00", "compareAtPrice": "120.00"},
		},
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	product := response["data"].(map[string]interface{})["product"].(map[string]interface{})
	variants := product["variants"].([]interface{})
	first := variants[0].(map[string]interface{})
	assert.Equal(suite.T(), "99.00", first["price"])
	assert.Equal(suite.T(), "120.00", first["compareAtPrice"])
}

func (suite *HandlerTestSuite) TestFormMeta() {
	w := suite.admin("GET", "/api/admin/products/meta", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})

	types := data["productTypes"].([]interface{})
	assert.Len(suite.T(), types, 5)
	bundles := types[0].(map[string]interface{})
	assert.Equal(suite.T(), "Bundles", bundles["name"])
	assert.Equal(suite.T(), "BND", bundles["code"])
	assert.Equal(suite.T(), float64(65), bundles["basePrice"])

	assert.NotEmpty(suite.T(), data["textures"])
	assert.NotEmpty(suite.T(), data["laceTypes"])
	assert.NotEmpty(suite.T(), data["colors"])
}

func (suite *HandlerTestSuite) TestGenerateVariants() {
	w := suite.admin("POST", "/api/admin/products/generate-variants", map[string]interface{}{
		"productType": "Bundles",
		"textureCode": "SLK",
		"lengths":     []string{`14"`, `12"`},
		"basePrice":   65,
		"increment":   10,
		"manualPrices": map[string]float64{
			`14"`: 120,
		},
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	variants := data["variants"].([]interface{})
	assert.Len(suite.T(), variants, 2)

	first := variants[0].(map[string]interface{})
	assert.Equal(suite.T(), `12"`, first["title"])
	assert.Equal(suite.T(), "65.00", first["price"])
	assert.Equal(suite.T(), "NES-BND-SLK-12", first["sku"])

	second := variants[1].(map[string]interface{})
	assert.Equal(suite.T(), "120.00", second["price"])

	// Missing lengths fails validation.
	w = suite.admin("POST", "/api/admin/products/generate-variants", map[string]interface{}{
		"productType": "Bundles", "basePrice": 65,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteProduct() {
	suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"id": "p-del", "handle": "deleted-product", "title": "Doomed", "productType": "Accessories",
	})

	w := suite.admin("DELETE", "/api/admin/products/p-del", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.admin("DELETE", "/api/admin/products/p-del", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestMutationsInvalidateCachedPages() {
	// Prime the cache.
	suite.do("GET", "/", nil, nil)
	suite.do("GET", "/", nil, nil)
	assert.Equal(suite.T(), 1, suite.pageHits)

	suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"id": "p-cache", "handle": "cache-buster", "title": "Cache Buster", "productType": "Wigs",
	})

	suite.do("GET", "/", nil, nil)
	assert.Equal(suite.T(), 2, suite.pageHits)
}

func (suite *HandlerTestSuite) TestSortedShopVariantsCacheSeparately() {
	asc := suite.do("GET", "/shop?sort=price-asc", nil, nil)
	desc := suite.do("GET", "/shop?sort=price-desc", nil, nil)
	assert.Equal(suite.T(), "shop sorted by price-asc", asc.Body.String())
	assert.Equal(suite.T(), "shop sorted by price-desc", desc.Body.String())
	assert.Equal(suite.T(), 2, suite.pageHits)

	// Cached per variant.
	repeat := suite.do("GET", "/shop?sort=price-desc", nil, nil)
	assert.Equal(suite.T(), "shop sorted by price-desc", repeat.Body.String())
	assert.Equal(suite.T(), 2, suite.pageHits)

	// An admin mutation refreshes every variant.
	suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"id": "p-sort", "handle": "sort-buster", "title": "Sort Buster", "productType": "Wigs",
	})
	suite.do("GET", "/shop?sort=price-asc", nil, nil)
	suite.do("GET", "/shop?sort=price-desc", nil, nil)
	assert.Equal(suite.T(), 4, suite.pageHits)
}

func (suite *HandlerTestSuite) TestPublicProductsEndpoint() {
	w := suite.do("GET", "/api/products", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var products []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &products)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), products)
}

func (suite *HandlerTestSuite) TestPublicCollectionsEndpoint() {
	w := suite.do("GET", "/api/collections", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var collections []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &collections)
	assert.NoError(suite.T(), err)

	handles := make([]string, 0, len(collections))
	for _, col := range collections {
		handles = append(handles, col["handle"].(string))
	}
	assert.Contains(suite.T(), handles, "all")
	assert.Contains(suite.T(), handles, "best-sellers")
}

func (suite *HandlerTestSuite) visitorCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == VisitorCookie {
			return cookie
		}
	}
	return nil
}

func (suite *HandlerTestSuite) seedCartProduct() string {
	suite.admin("POST", "/api/admin/products", map[string]interface{}{
		"id": "p-cart", "handle": "cart-product", "title": "Cart Product", "productType": "Bundles",
		"variants": []map[string]interface{}{
			{"id": "v-cart", "title": `14"`, "price": "65.00", "available": true},
		},
	})
	return "p-cart"
}

func (suite *HandlerTestSuite) TestCartFlow() {
	suite.seedCartProduct()

	w := suite.do("POST", "/api/cart/items", map[string]interface{}{
		"productId": "p-cart", "variantId": "v-cart", "quantity": 2,
	}, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	visitor := suite.visitorCookie(w)
	assert.NotNil(suite.T(), visitor)

	response := suite.decode(w)
	cartData := response["cart"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), cartData["totalQuantity"])
	summary := response["summary"].(map[string]interface{})
	assert.InDelta(suite.T(), 9.99, summary["shipping"].(float64), 0.001)

	// The snapshot was taken server-side from the catalog.
	items := cartData["items"].([]interface{})
	item := items[0].(map[string]interface{})
	assert.Equal(suite.T(), "65.00", item["price"])
	assert.Equal(suite.T(), "Cart Product", item["title"])

	// Same visitor sees the same cart; a new visitor starts empty.
	w = suite.do("GET", "/api/cart", nil, []*http.Cookie{visitor})
	response = suite.decode(w)
	assert.Equal(suite.T(), float64(2), response["cart"].(map[string]interface{})["totalQuantity"])

	w = suite.do("GET", "/api/cart", nil, nil)
	response = suite.decode(w)
	assert.Equal(suite.T(), float64(0), response["cart"].(map[string]interface{})["totalQuantity"])
}

func (suite *HandlerTestSuite) TestCartUnknownVariant() {
	suite.seedCartProduct()

	w := suite.do("POST", "/api/cart/items", map[string]interface{}{
		"productId": "p-cart", "variantId": "no-such-variant",
	}, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do("POST", "/api/cart/items", map[string]interface{}{
		"productId": "no-such-product", "variantId": "v-cart",
	}, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCheckoutFlow() {
	suite.seedCartProduct()

	w := suite.do("POST", "/api/checkout", nil, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do("POST", "/api/cart/items", map[string]interface{}{
		"productId": "p-cart", "variantId": "v-cart", "quantity": 1,
	}, nil)
	visitor := suite.visitorCookie(w)

	w = suite.do("POST", "/api/checkout", nil, []*http.Cookie{visitor})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	assert.True(suite.T(), response["local"].(bool))
	assert.Contains(suite.T(), response["redirectUrl"].(string), "/checkout/success?order=NES-")

	// The mock flow cleared the cart.
	w = suite.do("GET", "/api/cart", nil, []*http.Cookie{visitor})
	response = suite.decode(w)
	assert.Equal(suite.T(), float64(0), response["cart"].(map[string]interface{})["totalQuantity"])
}

func (suite *HandlerTestSuite) TestAccountFlow() {
	w := suite.do("POST", "/api/account/register", map[string]interface{}{
		"email": "nia@example.com", "password": "hunter22",
		"firstName": "Nia", "lastName": "Carter",
	}, nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	visitor := suite.visitorCookie(w)
	assert.NotNil(suite.T(), visitor)

	w = suite.do("GET", "/api/account", nil, []*http.Cookie{visitor})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Duplicate email conflicts regardless of case.
	w = suite.do("POST", "/api/account/register", map[string]interface{}{
		"email": "NIA@example.com", "password": "hunter22",
		"firstName": "Nia", "lastName": "Carter",
	}, nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	// Wrong password.
	w = suite.do("POST", "/api/account/login", map[string]interface{}{
		"email": "nia@example.com", "password": "wrong-password",
	}, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	// A fresh visitor has no session.
	w = suite.do("GET", "/api/account", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
