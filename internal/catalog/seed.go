// internal/catalog/seed.go

// Package catalog holds the built-in seed catalog the product store falls
// back to when no persistent backing document is configured, plus the
// facet constants shared by the storefront and the admin surface.
package catalog

import (
	"fmt"
	"time"

	"github.com/newerastudio/storefront/internal/models"
	"github.com/newerastudio/storefront/internal/pricing"
)

type lengthPrice struct {
	length string
	price  float64
}

func placeholderImage(id, label string) models.ProductImage {
	return models.ProductImage{
		ID:      id,
		URL:     "/images/products/" + id + ".jpg",
		AltText: label,
		Width:   800,
		Height:  800,
	}
}

func makeVariants(productIndex int, typeCode, textureCode string, lengths []lengthPrice, compareAtExtra float64) []models.ProductVariant {
	variants := make([]models.ProductVariant, 0, len(lengths))
	for i, lp := range lengths {
		variant := models.ProductVariant{
			ID:        fmt.Sprintf("variant-%d-%d", productIndex, i+1),
			Title:     lp.length,
			Price:     fmt.Sprintf("%.2f", lp.price),
			Available: true,
			SelectedOptions: []models.SelectedOption{
				{Name: "Length", Value: lp.length},
			},
			SKU: pricing.SKU(typeCode, textureCode, lp.length),
		}
		if compareAtExtra > 0 {
			variant.CompareAtPrice = fmt.Sprintf("%.2f", lp.price+compareAtExtra)
		}
		variants = append(variants, variant)
	}
	return variants
}

func lengthValues(lengths []lengthPrice) []string {
	values := make([]string, len(lengths))
	for i, lp := range lengths {
		values[i] = lp.length
	}
	return values
}

// staggeredDate spreads seed products across the ~90 days before the
// reference date so "newest" sorting has something to bite on.
func staggeredDate(index, total int) time.Time {
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	offsetDays := index * 90 / total
	return base.AddDate(0, 0, -offsetDays)
}

var bundleLengths = []string{`12"`, `14"`, `16"`, `18"`, `20"`, `22"`, `24"`, `26"`, `28"`, `30"`}
var baseBundlePrices = []float64{65, 75, 85, 95, 105, 115, 125, 135, 145, 165}

func bundleLengthPrices(offset float64) []lengthPrice {
	prices := make([]lengthPrice, len(bundleLengths))
	for i, l := range bundleLengths {
		prices[i] = lengthPrice{length: l, price: baseBundlePrices[i] + offset}
	}
	return prices
}

type seedSpec struct {
	handle      string
	title       string
	description string
	productType models.ProductType
	typeCode    string
	textureCode string
	tags        []string
	lengths     []lengthPrice
	extra       float64
}

// SeedProducts builds the built-in catalog. Each call returns a fresh copy
// so callers can mutate their view without corrupting the seed.
func SeedProducts() []models.Product {
	specs := []seedSpec{
		{
			handle:      "straight-virgin-hair-bundle",
			title:       "Straight Virgin Hair Bundle",
			description: "Silky straight 100% virgin human hair. Double-drawn wefts, minimal shedding, can be colored and heat styled.",
			productType: models.ProductTypeBundles,
			typeCode:    "BND", textureCode: "STR",
			tags:    []string{TagBestSeller, "Straight"},
			lengths: bundleLengthPrices(0), extra: 20,
		},
		{
			handle:      "body-wave-virgin-hair-bundle",
			title:       "Body Wave Virgin Hair Bundle",
			description: "Soft body wave pattern that holds through washes. 100% virgin human hair with full, healthy ends.",
			productType: models.ProductTypeBundles,
			typeCode:    "BND", textureCode: "BDW",
			tags:    []string{TagBestSeller, "Body Wave"},
			lengths: bundleLengthPrices(0), extra: 20,
		},
		{
			handle:      "deep-wave-virgin-hair-bundle",
			title:       "Deep Wave Virgin Hair Bundle",
			description: "Defined deep wave texture with lasting pattern memory. Tangle-free and true to length.",
			productType: models.ProductTypeBundles,
			typeCode:    "BND", textureCode: "DPW",
			tags:    []string{"Deep Wave"},
			lengths: bundleLengthPrices(5), extra: 20,
		},
		{
			handle:      "kinky-curly-virgin-hair-bundle",
			title:       "Kinky Curly Virgin Hair Bundle",
			description: "Bouncy kinky curls that blend beautifully with natural textures. Low maintenance, high volume.",
			productType: models.ProductTypeBundles,
			typeCode:    "BND", textureCode: "KNC",
			tags:    []string{TagNewArrival, "Kinky Curly"},
			lengths: bundleLengthPrices(10), extra: 20,
		},
		{
			handle:      "hd-lace-5x5-closure-straight",
			title:       "HD Lace 5x5 Closure — Straight",
			description: "Undetectable HD lace closure, pre-plucked hairline with baby hairs. Melts into all skin tones.",
			productType: models.ProductTypeClosures,
			typeCode:    "CLS", textureCode: "STR",
			tags: []string{TagBestSeller, "HD Lace", "Straight"},
			lengths: []lengthPrice{
				{`12"`, 85}, {`14"`, 95}, {`16"`, 105}, {`18"`, 115}, {`20"`, 125},
			},
			extra: 20,
		},
		{
			handle:      "hd-lace-13x4-frontal-body-wave",
			title:       "HD Lace 13x4 Frontal — Body Wave",
			description: "Ear-to-ear HD lace frontal for versatile parting. Pre-plucked with natural density.",
			productType: models.ProductTypeFrontals,
			typeCode:    "FRT", textureCode: "BDW",
			tags: []string{"HD Lace", "Body Wave"},
			lengths: []lengthPrice{
				{`12"`, 125}, {`14"`, 140}, {`16"`, 155}, {`18"`, 170}, {`20"`, 185},
			},
			extra: 25,
		},
		{
			handle:      "glueless-hd-lace-wig-straight",
			title:       "Glueless HD Lace Wig — Straight",
			description: "Ready-to-wear glueless wig with adjustable band and pre-cut HD lace. Beginner friendly.",
			productType: models.ProductTypeWigs,
			typeCode:    "WIG", textureCode: "STR",
			tags: []string{TagBestSeller, TagNewArrival, "Glueless", "Straight"},
			lengths: []lengthPrice{
				{`14"`, 195}, {`16"`, 215}, {`18"`, 235}, {`20"`, 255},
				{`22"`, 275}, {`24"`, 295}, {`26"`, 315},
			},
			extra: 40,
		},
		{
			handle:      "deep-wave-hd-lace-wig",
			title:       "Deep Wave HD Lace Wig",
			description: "Full-density deep wave wig on transparent HD lace. Styled, plucked, and ready to ship.",
			productType: models.ProductTypeWigs,
			typeCode:    "WIG", textureCode: "DPW",
			tags: []string{TagNewArrival, "Deep Wave"},
			lengths: []lengthPrice{
				{`14"`, 205}, {`16"`, 225}, {`18"`, 245}, {`20"`, 265},
				{`22"`, 285}, {`24"`, 305}, {`26"`, 325},
			},
			extra: 40,
		},
		{
			handle:      "satin-edge-wrap",
			title:       "Satin Edge Wrap",
			description: "Satin-lined edge wrap to lay and protect your install overnight.",
			productType: models.ProductTypeAccessories,
			typeCode:    "ACC", textureCode: "GEN",
			tags:    []string{"Accessories"},
			lengths: []lengthPrice{{"One Size", 15}},
			extra:   0,
		},
	}

	products := make([]models.Product, 0, len(specs))
	for i, spec := range specs {
		variants := makeVariants(i+1, spec.typeCode, spec.textureCode, spec.lengths, spec.extra)
		image := placeholderImage(fmt.Sprintf("image-%d-1", i+1), spec.title)

		product := models.Product{
			ID:              fmt.Sprintf("product-%d", i+1),
			Handle:          spec.handle,
			Title:           spec.title,
			Description:     spec.description,
			DescriptionHTML: "<p>" + spec.description + "</p>",
			Vendor:          Vendor,
			ProductType:     spec.productType,
			Tags:            append([]string(nil), spec.tags...),
			Images:          []models.ProductImage{image},
			Variants:        variants,
			Options: []models.ProductOption{
				{Name: "Length", Values: lengthValues(spec.lengths)},
			},
			FeaturedImage:    image,
			AvailableForSale: true,
			CreatedAt:        staggeredDate(i, len(specs)),
		}
		product.RecomputePriceRange()
		products = append(products, product)
	}
	return products
}
