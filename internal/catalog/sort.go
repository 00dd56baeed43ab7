// internal/catalog/sort.go
package catalog

import (
	"sort"
	"strconv"

	"github.com/newerastudio/storefront/internal/models"
)

// SortProducts orders a product list for the shop page. "featured" keeps
// catalog order with best sellers first; price sorts use the minimum
// variant price; "newest" uses createdAt descending.
func SortProducts(products []models.Product, option models.SortOption) []models.Product {
	out := append([]models.Product(nil), products...)

	switch option {
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return minPrice(out[i]) < minPrice(out[j])
		})
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return minPrice(out[i]) > minPrice(out[j])
		})
	case models.SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].HasTag(TagBestSeller) && !out[j].HasTag(TagBestSeller)
		})
	}
	return out
}

func minPrice(p models.Product) float64 {
	f, _ := strconv.ParseFloat(p.PriceRange.MinVariantPrice.Amount, 64)
	return f
}
