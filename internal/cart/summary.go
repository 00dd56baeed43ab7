// internal/cart/summary.go
package cart

import "github.com/newerastudio/storefront/internal/models"

// Summary is what the cart page shows above the checkout button.
type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	Shipping        float64 `json:"shipping"`
	Total           float64 `json:"total"`
	FreeShipping    bool    `json:"freeShipping"`
	RemainingToFree float64 `json:"remainingToFree"`
}

// Summarize applies the free-shipping threshold to a cart. Subtotals at or
// above the threshold ship free; anything below pays the flat rate.
func Summarize(c models.Cart, freeShippingThreshold, flatRate float64) Summary {
	remaining := freeShippingThreshold - c.Subtotal
	free := remaining <= 0

	shipping := flatRate
	if free || len(c.Items) == 0 {
		shipping = 0
		remaining = 0
	}

	return Summary{
		Subtotal:        c.Subtotal,
		Shipping:        shipping,
		Total:           c.Subtotal + shipping,
		FreeShipping:    free,
		RemainingToFree: remaining,
	}
}
