// internal/pricing/generator.go

// Package pricing derives per-length variant price lists for the admin
// product form. Generation is a pure function of its inputs: toggling a
// length in or out regenerates the full list, and only manual per-length
// overrides survive a toggle.
package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/newerastudio/storefront/internal/models"
)

// TypeDefaults carries the admin form's starting point per product type.
type TypeDefaults struct {
	Lengths   []string
	BasePrice float64
	Increment float64
}

var Defaults = map[models.ProductType]TypeDefaults{
	models.ProductTypeBundles: {
		Lengths:   []string{`12"`, `14"`, `16"`, `18"`, `20"`, `22"`, `24"`, `26"`, `28"`, `30"`},
		BasePrice: 65,
		Increment: 10,
	},
	models.ProductTypeClosures: {
		Lengths:   []string{`12"`, `14"`, `16"`, `18"`, `20"`},
		BasePrice: 85,
		Increment: 10,
	},
	models.ProductTypeFrontals: {
		Lengths:   []string{`12"`, `14"`, `16"`, `18"`, `20"`},
		BasePrice: 125,
		Increment: 15,
	},
	models.ProductTypeWigs: {
		Lengths:   []string{`14"`, `16"`, `18"`, `20"`, `22"`, `24"`, `26"`},
		BasePrice: 195,
		Increment: 20,
	},
	models.ProductTypeAccessories: {
		Lengths:   []string{"One Size"},
		BasePrice: 15,
		Increment: 0,
	},
}

var TypeCodes = map[models.ProductType]string{
	models.ProductTypeBundles:     "BND",
	models.ProductTypeClosures:    "CLS",
	models.ProductTypeFrontals:    "FRT",
	models.ProductTypeWigs:        "WIG",
	models.ProductTypeAccessories: "ACC",
}

// Input describes one generation run.
type Input struct {
	ProductType models.ProductType
	TypeCode    string // overrides the product-type code when set
	TextureCode string // 3-letter texture code, "GEN" when unset
	Lengths     []string
	BasePrice   float64
	Increment   float64
	// CompareAtExtra > 0 adds a compare-at price of price+extra per variant.
	CompareAtExtra float64
	// ManualPrices overrides the derived price for individual lengths,
	// keyed by length label. Overrides are retained across length toggles.
	ManualPrices map[string]float64
}

// Generate produces one variant per selected length, ordered, deduplicated,
// and sorted, with price = base + increment × index unless a manual
// override wins for that length.
func Generate(in Input) ([]models.ProductVariant, []models.ProductOption) {
	lengths := normalizeLengths(in.Lengths)

	typeCode := in.TypeCode
	if typeCode == "" {
		typeCode = TypeCodes[in.ProductType]
	}
	if typeCode == "" {
		typeCode = "PRD"
	}
	textureCode := in.TextureCode
	if textureCode == "" {
		textureCode = "GEN"
	}

	variants := make([]models.ProductVariant, 0, len(lengths))
	for i, length := range lengths {
		price := in.BasePrice + in.Increment*float64(i)
		if override, ok := in.ManualPrices[length]; ok {
			price = override
		}

		variant := models.ProductVariant{
			ID:        fmt.Sprintf("variant-new-%d", i+1),
			Title:     length,
			Price:     fmt.Sprintf("%.2f", price),
			Available: true,
			SelectedOptions: []models.SelectedOption{
				{Name: "Length", Value: length},
			},
			SKU: SKU(typeCode, textureCode, length),
		}
		if in.CompareAtExtra > 0 {
			variant.CompareAtPrice = fmt.Sprintf("%.2f", price+in.CompareAtExtra)
		}
		variants = append(variants, variant)
	}

	options := []models.ProductOption{{Name: "Length", Values: lengths}}
	return variants, options
}

// SKU synthesizes a variant SKU from the product-type code, the texture
// code, and the numeric token of the length label. Non-numeric lengths
// ("One Size") map to the fixed token "OS".
func SKU(typeCode, textureCode, length string) string {
	return fmt.Sprintf("NES-%s-%s-%s", typeCode, textureCode, LengthToken(length))
}

// LengthToken extracts the digits of a length label, or "OS" when the
// label has none.
func LengthToken(length string) string {
	token := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, length)
	if token == "" {
		return "OS"
	}
	return token
}

// normalizeLengths deduplicates and sorts length labels numerically by
// their token; non-numeric labels sort last, alphabetically.
func normalizeLengths(lengths []string) []string {
	seen := make(map[string]bool, len(lengths))
	out := make([]string, 0, len(lengths))
	for _, l := range lengths {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ni, iok := lengthValue(out[i])
		nj, jok := lengthValue(out[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok:
			return true
		case jok:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

func lengthValue(length string) (int, bool) {
	token := LengthToken(length)
	if token == "OS" {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}
