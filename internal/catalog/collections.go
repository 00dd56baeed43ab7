// internal/catalog/collections.go
package catalog

import "github.com/newerastudio/storefront/internal/models"

// Collections derives the storefront's groupings from the live catalog.
// They are recomputed on every call rather than stored, so admin mutations
// are reflected immediately.
func Collections(products []models.Product) []models.Collection {
	var bundles, closuresFrontals, wigs, bestSellers, newArrivals []models.Product
	for _, p := range products {
		switch p.ProductType {
		case models.ProductTypeBundles:
			bundles = append(bundles, p)
		case models.ProductTypeClosures, models.ProductTypeFrontals:
			closuresFrontals = append(closuresFrontals, p)
		case models.ProductTypeWigs:
			wigs = append(wigs, p)
		}
		if p.HasTag(TagBestSeller) {
			bestSellers = append(bestSellers, p)
		}
		if p.HasTag(TagNewArrival) {
			newArrivals = append(newArrivals, p)
		}
	}

	return []models.Collection{
		{
			ID:          "collection-all",
			Handle:      "all",
			Title:       "All",
			Description: "Browse our complete collection of luxury virgin hair extensions, wigs, and accessories.",
			Products:    products,
		},
		{
			ID:          "collection-bundles",
			Handle:      "bundles",
			Title:       "Bundles",
			Description: "Premium virgin hair bundles in every texture.",
			Products:    bundles,
		},
		{
			ID:          "collection-closures-frontals",
			Handle:      "closures-frontals",
			Title:       "Closures & Frontals",
			Description: "HD lace closures and frontals for an undetectable finish.",
			Products:    closuresFrontals,
		},
		{
			ID:          "collection-wigs",
			Handle:      "wigs",
			Title:       "Wigs",
			Description: "Ready-to-wear HD lace front wigs and glueless wigs.",
			Products:    wigs,
		},
		{
			ID:          "collection-best-sellers",
			Handle:      "best-sellers",
			Title:       "Best Sellers",
			Description: "Our most-loved products, chosen by the community.",
			Products:    bestSellers,
		},
		{
			ID:          "collection-new-arrivals",
			Handle:      "new-arrivals",
			Title:       "New Arrivals",
			Description: "The latest additions to the lineup.",
			Products:    newArrivals,
		},
	}
}
