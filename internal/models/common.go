// internal/models/common.go
package models

// Money is a decimal amount carried as a string with two places, which is
// how the storefront API and the catalog document represent prices.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Enums
type ProductType string

const (
	ProductTypeBundles     ProductType = "Bundles"
	ProductTypeClosures    ProductType = "Closures"
	ProductTypeFrontals    ProductType = "Frontals"
	ProductTypeWigs        ProductType = "Wigs"
	ProductTypeAccessories ProductType = "Accessories"
)

// ProductTypes lists every product type in display order.
var ProductTypes = []ProductType{
	ProductTypeBundles,
	ProductTypeClosures,
	ProductTypeFrontals,
	ProductTypeWigs,
	ProductTypeAccessories,
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNewest    SortOption = "newest"
)
