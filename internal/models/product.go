// internal/models/product.go
package models

import (
	"fmt"
	"strconv"
	"time"
)

type ProductImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ProductVariant struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Price           string           `json:"price"`
	CompareAtPrice  string           `json:"compareAtPrice,omitempty"`
	Available       bool             `json:"available"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	SKU             string           `json:"sku"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

type Product struct {
	ID               string           `json:"id"`
	Handle           string           `json:"handle"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	DescriptionHTML  string           `json:"descriptionHtml"`
	Vendor           string           `json:"vendor"`
	ProductType      ProductType      `json:"productType"`
	Tags             []string         `json:"tags"`
	Images           []ProductImage   `json:"images"`
	Variants         []ProductVariant `json:"variants"`
	Options          []ProductOption  `json:"options"`
	PriceRange       PriceRange       `json:"priceRange"`
	FeaturedImage    ProductImage     `json:"featuredImage"`
	AvailableForSale bool             `json:"availableForSale"`
	CreatedAt        time.Time        `json:"createdAt"`
	Collections      []string         `json:"collections,omitempty"`
}

// RecomputePriceRange rewrites PriceRange from the current variant prices.
// Must be called after every variant price mutation; with no variants the
// range collapses to 0.00.
func (p *Product) RecomputePriceRange() {
	if len(p.Variants) == 0 {
		zero := Money{Amount: "0.00", CurrencyCode: "USD"}
		p.PriceRange = PriceRange{MinVariantPrice: zero, MaxVariantPrice: zero}
		return
	}

	min, max := parsePrice(p.Variants[0].Price), parsePrice(p.Variants[0].Price)
	for _, v := range p.Variants[1:] {
		price := parsePrice(v.Price)
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}

	p.PriceRange = PriceRange{
		MinVariantPrice: Money{Amount: fmt.Sprintf("%.2f", min), CurrencyCode: "USD"},
		MaxVariantPrice: Money{Amount: fmt.Sprintf("%.2f", max), CurrencyCode: "USD"},
	}
}

// HasTag reports whether the product carries the given tag. Tags double as
// feature flags on the storefront ("Best Seller", "New Arrival").
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ValidateVariantOptions checks that every variant's selected options match
// exactly the product's declared option axes.
func (p *Product) ValidateVariantOptions() error {
	declared := make(map[string]map[string]bool, len(p.Options))
	for _, opt := range p.Options {
		values := make(map[string]bool, len(opt.Values))
		for _, v := range opt.Values {
			values[v] = true
		}
		declared[opt.Name] = values
	}

	for _, variant := range p.Variants {
		if len(variant.SelectedOptions) != len(p.Options) {
			return fmt.Errorf("variant %q selects %d options, product declares %d",
				variant.ID, len(variant.SelectedOptions), len(p.Options))
		}
		for _, sel := range variant.SelectedOptions {
			values, ok := declared[sel.Name]
			if !ok {
				return fmt.Errorf("variant %q selects undeclared option %q", variant.ID, sel.Name)
			}
			if !values[sel.Value] {
				return fmt.Errorf("variant %q selects value %q outside option %q", variant.ID, sel.Value, sel.Name)
			}
		}
	}
	return nil
}

func parsePrice(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
