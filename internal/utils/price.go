// internal/utils/price.go
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePrice reads a decimal price string; malformed input parses as 0.
func ParsePrice(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// FormatPrice renders an amount as a two-place decimal string.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatUSD renders a display price, e.g. "$65.00".
func FormatUSD(amount float64) string {
	return "$" + FormatPrice(amount)
}

// DiscountPercentage returns the rounded percentage off between a current
// price and a compare-at price. A compare-at at or below the price has no
// discount effect.
func DiscountPercentage(price, compareAtPrice string) int {
	current := ParsePrice(price)
	original := ParsePrice(compareAtPrice)
	if original == 0 || original <= current {
		return 0
	}
	return int(math.Round((original - current) / original * 100))
}
